package similarity_test

import (
	"fmt"

	"github.com/hupe1980/geosearch/feature"
	"github.com/hupe1980/geosearch/geometry"
	"github.com/hupe1980/geosearch/similarity"
)

func ExampleExplain() {
	a, _ := feature.Extract(geometry.Cube("a", 1))
	b, _ := feature.Extract(geometry.Cube("b", 2))

	bd := similarity.Explain(&a, &b)
	fmt.Printf("histogram=%.2f volume=%.3f area=%.2f score=%d\n",
		bd.Histogram, bd.Volume, bd.Area, bd.Score())
	// Output: histogram=1.00 volume=0.125 area=0.25 score=59
}

func ExampleCompare() {
	empty := feature.Empty()
	fmt.Println(similarity.Compare(&empty, &empty))
	// Output: 1
}
