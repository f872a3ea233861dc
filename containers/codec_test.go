package containers

import (
	"testing"

	"github.com/dolthub/swiss"
	"github.com/puzpuzpuz/xsync/v3"
	"github.com/stretchr/testify/require"

	"github.com/protosun/protosun/wire"
)

// encodeField archives one tagged field through the default-eliding path.
func encodeField[T any](c wire.Codec[T], tag uint32, v T) []byte {
	w := wire.NewRevWriter(wire.FieldLen(c, tag, v))
	wire.EncodeField(w, c, tag, v)
	return w.FinishTight()
}

// mergeField merges every field occurrence in data into a default value.
func mergeField[T any](t *testing.T, c wire.Codec[T], data []byte) T {
	t.Helper()
	v := c.Default()
	require.NoError(t, mergeInto(c, data, &v))
	return v
}

func newSwiss[K comparable, V any](src map[K]V) *swiss.Map[K, V] {
	m := swiss.NewMap[K, V](uint32(len(src)))
	for k, v := range src {
		m.Put(k, v)
	}
	return m
}

func newSync[K comparable, V any](src map[K]V) *xsync.MapOf[K, V] {
	m := xsync.NewMapOf[K, V]()
	for k, v := range src {
		m.Store(k, v)
	}
	return m
}

func mergeInto[T any](c wire.Codec[T], data []byte, v *T) error {
	r := wire.NewReader(data)
	ctx := wire.NewDecodeContext()
	for r.HasRemaining() {
		_, wt, err := wire.DecodeKey(r)
		if err != nil {
			return err
		}
		if err := c.Merge(wt, v, r, ctx); err != nil {
			return err
		}
	}
	return nil
}
