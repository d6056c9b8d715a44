package vector_test

import (
	"errors"
	"math/rand/v2"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/pavanmanishd/vector"
)

// failingAllocator refuses every request once armed.
type failingAllocator struct {
	armed bool
}

func (f *failingAllocator) Alloc(n int) ([]int, error) {
	if f.armed {
		return nil, errors.New("allocator armed to fail")
	}
	return make([]int, n), nil
}

func (f *failingAllocator) Free([]int) {}

func snapshot(v *vector.Vector[int]) []int {
	out := make([]int, v.Len())
	for i := range out {
		out[i] = *v.At(i)
	}
	return out
}

var _ = Describe("Vector", func() {
	var rng *rand.Rand

	BeforeEach(func() {
		seed := GinkgoRandomSeed()
		rng = rand.New(rand.NewPCG(uint64(seed), uint64(seed)>>1))
	})

	Describe("PushBack", func() {
		It("preserves insertion order for any number of pushes", func() {
			for trial := 0; trial < 20; trial++ {
				n := rng.IntN(300)
				v := vector.New(vector.Config[int]{})
				want := make([]int, n)
				for i := range want {
					want[i] = rng.Int()
					Expect(v.PushBack(want[i])).To(Succeed())
				}
				Expect(v.Len()).To(Equal(n))
				Expect(snapshot(v)).To(Equal(want))
				v.Release()
			}
		})

		It("reallocates only when the vector was full", func() {
			v := vector.New(vector.Config[int]{})
			defer v.Release()
			for i := 0; i < 500; i++ {
				full := v.Len() == v.Cap()
				before := v.Cap()
				Expect(v.PushBack(i)).To(Succeed())
				if full {
					Expect(v.Cap()).To(BeNumerically(">", before))
				} else {
					Expect(v.Cap()).To(Equal(before))
				}
			}
		})

		It("follows the documented schedule from empty", func() {
			v := vector.New(vector.Config[int]{})
			defer v.Release()
			var caps []int
			for i := 0; i < 4; i++ {
				v.PushBack(i)
				caps = append(caps, v.Cap())
			}
			Expect(caps).To(Equal([]int{1, 3, 3, 5}))
		})
	})

	Describe("random workloads", func() {
		It("keep length within capacity and bounds exact", func() {
			v := vector.New(vector.Config[int]{})
			defer v.Release()
			var model []int

			for step := 0; step < 2000; step++ {
				switch rng.IntN(4) {
				case 0, 1:
					x := rng.Int()
					Expect(v.PushBack(x)).To(Succeed())
					model = append(model, x)
				case 2:
					pos := rng.IntN(len(model) + 1)
					x := rng.Int()
					Expect(v.Insert(pos, x)).To(Succeed())
					model = append(model[:pos], append([]int{x}, model[pos:]...)...)
				case 3:
					if len(model) > 0 {
						pos := rng.IntN(len(model))
						Expect(v.RemoveAt(pos)).To(Succeed())
						model = append(model[:pos], model[pos+1:]...)
					}
				}

				Expect(v.Len()).To(BeNumerically("<=", v.Cap()))
				Expect(v.At(v.Len())).To(BeNil())
				Expect(v.At(-1)).To(BeNil())
			}
			Expect(snapshot(v)).To(Equal(model))
		})
	})

	Describe("reserved vectors", func() {
		It("never drop below the reserved capacity", func() {
			const reserved = 50
			v, err := vector.NewReserved(reserved, vector.Config[int]{})
			Expect(err).NotTo(HaveOccurred())
			defer v.Release()

			low := v.Cap()
			for cycle := 0; cycle < 10; cycle++ {
				for i := rng.IntN(120); i > 0; i-- {
					v.PushBack(i)
				}
				for v.PopBack() {
				}
				Expect(v.Cap()).To(BeNumerically(">=", low))
				low = v.Cap()
			}
			Expect(v.Cap()).To(BeNumerically(">=", reserved))
			Expect(v.Pinned()).To(BeTrue())
		})
	})

	Describe("allocation failure", func() {
		It("leaves a full vector untouched", func() {
			alloc := &failingAllocator{}
			v := vector.New(vector.Config[int]{Allocator: alloc})
			defer v.Release()

			for v.Len() < 12 {
				Expect(v.PushBack(v.Len())).To(Succeed())
			}
			Expect(v.Len()).To(Equal(v.Cap()))
			before := snapshot(v)

			alloc.armed = true
			Expect(v.PushBack(99)).To(MatchError(vector.ErrAllocation))
			Expect(v.Insert(0, 99)).To(MatchError(vector.ErrAllocation))

			Expect(v.Len()).To(Equal(12))
			Expect(v.Cap()).To(Equal(12))
			Expect(snapshot(v)).To(Equal(before))
		})

		It("keeps the larger storage when a shrink is refused", func() {
			alloc := &failingAllocator{}
			v := vector.New(vector.Config[int]{Allocator: alloc})
			defer v.Release()

			for i := 0; i < 40; i++ {
				v.PushBack(i)
			}
			alloc.armed = true
			for v.Len() > 1 {
				Expect(v.PopBack()).To(BeTrue())
			}
			Expect(v.Cap()).To(BeNumerically(">=", 40))
			Expect(*v.At(0)).To(Equal(0))
			Expect(v.Metrics().FailedShrinks).To(BeNumerically(">", 0))
		})
	})

	Describe("Insert", func() {
		DescribeTable("on [A, B]",
			func(pos int, want []int) {
				v := vector.New(vector.Config[int]{})
				defer v.Release()
				v.PushBack(1)
				v.PushBack(2)
				Expect(v.Insert(pos, 9)).To(Succeed())
				Expect(v.Len()).To(Equal(3))
				Expect(snapshot(v)).To(Equal(want))
			},
			Entry("at the front", 0, []int{9, 1, 2}),
			Entry("in the middle", 1, []int{1, 9, 2}),
			Entry("at the back", 2, []int{1, 2, 9}),
		)

		It("rejects positions past the end", func() {
			v := vector.New(vector.Config[int]{})
			defer v.Release()
			Expect(v.Insert(1, 9)).To(MatchError(vector.ErrOutOfRange))
			Expect(v.Insert(-1, 9)).To(MatchError(vector.ErrOutOfRange))
			Expect(v.Len()).To(Equal(0))
			Expect(v.Cap()).To(Equal(0))
		})
	})

	Describe("Release", func() {
		It("destroys each live element exactly once", func() {
			destroyed := map[int]int{}
			v := vector.New(vector.Config[int]{
				Destroy: func(p *int) { destroyed[*p]++ },
			})
			n := 1 + rng.IntN(100)
			for i := 0; i < n; i++ {
				v.PushBack(i)
			}
			capacity := v.Cap()
			v.Release()

			Expect(destroyed).To(HaveLen(n))
			for i := 0; i < n; i++ {
				Expect(destroyed[i]).To(Equal(1), "element %d", i)
			}
			Expect(n).To(BeNumerically("<=", capacity))
		})

		It("panics on use afterwards", func() {
			v := vector.New(vector.Config[int]{})
			v.Release()
			Expect(func() { v.PushBack(1) }).To(PanicWith("vector: use after Release()"))
			Expect(v.Release).NotTo(Panic())
		})
	})
})
