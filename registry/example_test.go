package registry_test

import (
	"fmt"

	"github.com/jonwraymond/brokerdiag/config"
	"github.com/jonwraymond/brokerdiag/knowledge"
	"github.com/jonwraymond/brokerdiag/registry"
	"github.com/jonwraymond/brokerdiag/snapshot"
)

func ExampleNewDefault() {
	r, err := registry.NewDefault(config.Default(), knowledge.Default())
	if err != nil {
		fmt.Println(err)
		return
	}

	s, ok := r.TryGet(snapshot.KindCluster)
	fmt.Println(r.ProbeCount(), r.ScannerCount(), s.Identifier(), ok)
	// Output: 21 3 ClusterScanner true
}

func ExampleRegistry_TryGet() {
	r, _ := registry.New(config.Default(), knowledge.New())

	s, ok := r.TryGet(snapshot.KindBrokerQueues)
	fmt.Println(s.Identifier(), ok)
	// Output: NoOpScanner false
}
