// Package quick runs property checks over randomly generated slices, in the
// spirit of testing/quick but covering the slice sizes that matter to block
// codecs: testing/quick caps generated values at 50 elements, far below the
// 128-value block and miniblock boundaries the encodings in this module care
// about.
package quick

import (
	"fmt"
	"math/rand"
	"reflect"
)

// DefaultConfig exercises every size around the block and miniblock
// boundaries of the delta encodings, plus a spread of larger sizes.
var DefaultConfig = Config{
	Sizes: []int{
		0, 1, 2, 3, 4, 5, 6, 7, 8, 9,
		15, 16, 17,
		31, 32, 33,
		63, 64, 65,
		127, 128, 129,
		255, 256, 257,
		1000, 1023, 1024, 1025,
		4000, 4095, 4096, 4097,
	},
	Seed: 0,
}

// Check calls f, which must have the form func([]T) bool, with randomly
// populated slices of every configured size, reporting the first input it
// returns false for.
func Check(f interface{}) error {
	return DefaultConfig.Check(f)
}

type Config struct {
	Sizes []int
	Seed  int64
}

func (c *Config) Check(f interface{}) error {
	v := reflect.ValueOf(f)
	r := rand.New(rand.NewSource(c.Seed))
	t := v.Type().In(0)
	makeValue := makeValueFuncOf(t.Elem())

	for _, n := range c.Sizes {
		for i := 0; i < 3; i++ {
			in := reflect.MakeSlice(t, n, n)
			for j := 0; j < n; j++ {
				makeValue(in.Index(j), r)
			}
			if ok := v.Call([]reflect.Value{in}); !ok[0].Bool() {
				return fmt.Errorf("test #%d: failed on input of size %d: %#v", i+1, n, in.Interface())
			}
		}
	}
	return nil
}

type makeValueFunc func(reflect.Value, *rand.Rand)

func makeValueFuncOf(t reflect.Type) makeValueFunc {
	switch t.Kind() {
	case reflect.Bool:
		return func(v reflect.Value, r *rand.Rand) {
			v.SetBool((r.Int() % 2) != 0)
		}

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		// Draw from the full unsigned range then reinterpret, so negative
		// values and both extremes come up; SetInt truncates to the width
		// of the destination.
		return func(v reflect.Value, r *rand.Rand) {
			v.SetInt(int64(r.Uint64()))
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return func(v reflect.Value, r *rand.Rand) {
			v.SetUint(r.Uint64())
		}

	case reflect.Float32, reflect.Float64:
		return func(v reflect.Value, r *rand.Rand) {
			v.SetFloat((r.Float64() - 0.5) * 2e9)
		}

	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			return func(v reflect.Value, r *rand.Rand) {
				b := make([]byte, r.Intn(50))
				r.Read(b)
				v.SetBytes(b)
			}
		}
		makeElem := makeValueFuncOf(t.Elem())
		return func(v reflect.Value, r *rand.Rand) {
			n := r.Intn(10)
			s := reflect.MakeSlice(t, n, n)
			for i := 0; i < n; i++ {
				makeElem(s.Index(i), r)
			}
			v.Set(s)
		}

	case reflect.Array:
		makeElem := makeValueFuncOf(t.Elem())
		return func(v reflect.Value, r *rand.Rand) {
			for i, n := 0, v.Len(); i < n; i++ {
				makeElem(v.Index(i), r)
			}
		}

	default:
		panic("quick.Check does not support test values of type " + t.String())
	}
}
