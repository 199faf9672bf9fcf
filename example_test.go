package mnistknn_test

import (
	"context"
	"fmt"
	"log"

	"github.com/hupe1980/mnistknn"
	"github.com/hupe1980/mnistknn/dataset"
)

func point(x, y, label uint8) dataset.Sample {
	return dataset.Sample{Features: []uint8{x, y}, RawLabel: label}
}

// Example demonstrates classifying a point with two nearby clusters.
func Example() {
	ds, err := dataset.New([]dataset.Sample{
		point(0, 0, 'A'),
		point(1, 0, 'A'),
		point(10, 10, 'B'),
		point(11, 10, 'B'),
	})
	if err != nil {
		log.Fatal(err)
	}

	cfg, err := mnistknn.Configure(3, ds.NumClasses(), "euclidean")
	if err != nil {
		log.Fatal(err)
	}
	clf, err := cfg.Bind(ds, nil, nil)
	if err != nil {
		log.Fatal(err)
	}

	class, err := clf.Predict(context.Background(), []uint8{0, 1})
	if err != nil {
		log.Fatal(err)
	}
	label, _ := ds.Classes().Label(class)

	fmt.Printf("%c\n", label)
	// Output: A
}

// Example_accuracy demonstrates scoring predictions against a partition.
func Example_accuracy() {
	samples := make([]dataset.Sample, 10)
	for i := range samples {
		samples[i] = dataset.Sample{Features: []uint8{uint8(i)}, RawLabel: uint8(i % 2)}
	}
	ds, err := dataset.New(samples)
	if err != nil {
		log.Fatal(err)
	}

	ev, err := mnistknn.Evaluate(ds, []int{0, 1, 0, 1, 0, 1, 1, 0, 1, 0}, ds.NumClasses())
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(ev.Accuracy)
	// Output: 0.6
}
