package utils

import (
	"runtime"
	"sync"
)

// Partition splits Items into contiguous buckets whose sizes differ by at
// most one. The first Items%len(Buckets) buckets get the extra item.
type Partition struct {
	Items   int
	Buckets [][2]int // [begin, end) of each bucket
}

func NewPartition(parallelDegree, items int) (p *Partition) {
	if parallelDegree < 1 {
		parallelDegree = 1
	}
	p = &Partition{
		Items:   items,
		Buckets: make([][2]int, parallelDegree),
	}
	var (
		size      = items / parallelDegree
		remainder = items % parallelDegree
		begin     int
	)
	for bn := range p.Buckets {
		end := begin + size
		if bn < remainder {
			end++
		}
		p.Buckets[bn] = [2]int{begin, end}
		begin = end
	}
	return
}

func (p *Partition) Range(bn int) (begin, end int) {
	return p.Buckets[bn][0], p.Buckets[bn][1]
}

func (p *Partition) Len(bn int) int { return p.Buckets[bn][1] - p.Buckets[bn][0] }

// Bucket finds the bucket holding item i, or -1 when i is out of range.
// The proportional guess is at most one bucket off.
func (p *Partition) Bucket(i int) (bn int) {
	if i < 0 || i >= p.Items {
		return -1
	}
	bn = len(p.Buckets) * i / p.Items
	for {
		switch begin, end := p.Range(bn); {
		case i < begin:
			bn--
		case i >= end:
			bn++
		default:
			return
		}
	}
}

// ParallelFor calls fn for every index in [0, n) from at most
// parallelDegree goroutines, each owning one bucket. A parallelDegree below
// one means one goroutine per CPU.
func ParallelFor(parallelDegree, n int, fn func(i int)) {
	if parallelDegree < 1 {
		parallelDegree = runtime.NumCPU()
	}
	if parallelDegree > n {
		parallelDegree = n
	}
	if n == 0 {
		return
	}
	var (
		p  = NewPartition(parallelDegree, n)
		wg = sync.WaitGroup{}
	)
	for bn := range p.Buckets {
		wg.Add(1)
		go func(bn int) {
			defer wg.Done()
			begin, end := p.Range(bn)
			for i := begin; i < end; i++ {
				fn(i)
			}
		}(bn)
	}
	wg.Wait()
}
