package partfunc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_Select_choosesBitmaskForPowersOfTwo(t *testing.T) {
	for _, n := range []int{1, 2, 4, 8, 16, 1024} {
		for h := uint32(0); h < 256; h++ {
			require.Equal(t, Bitmask(n)(h), Select(n)(h), "n=%d h=%d", n, h)
		}
	}
}

func Test_Select_choosesModuloForNonPowersOfTwo(t *testing.T) {
	for _, n := range []int{3, 5, 6, 7, 100} {
		for h := uint32(0); h < 256; h++ {
			require.Equal(t, Modulo(n)(h), Select(n)(h), "n=%d h=%d", n, h)
		}
	}
}

func Test_BitmaskAndModulo_agreeOnPowersOfTwo(t *testing.T) {
	for _, n := range []int{1, 2, 4, 8, 16, 32, 1 << 20} {
		bm := Bitmask(n)
		mod := Modulo(n)
		for h := uint32(0); h < 4096; h++ {
			require.Equal(t, mod(h), bm(h), "n=%d h=%d", n, h)
		}
	}
}

func Test_partitionIndexInRange(t *testing.T) {
	for _, n := range []int{1, 3, 7, 16, 100} {
		f := Select(n)
		for h := uint32(0); h < 10000; h += 37 {
			p := f(h)
			require.GreaterOrEqual(t, p, 0)
			require.Less(t, p, n)
		}
	}
}
