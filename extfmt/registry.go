package extfmt

import (
	"fmt"
	"sort"
	"sync"
)

var reg *Registry

func init() {
	reg = &Registry{
		implementations:      map[string]ExtFmt{},
		implementationsMutex: &sync.Mutex{},
	}
}

type Registry struct {
	implementations      map[string]ExtFmt
	implementationsMutex *sync.Mutex
}

func RegisterExtFmt(key string, impl ExtFmt) {
	reg.implementationsMutex.Lock()
	defer reg.implementationsMutex.Unlock()
	if key == "" {
		panic("invalid extfmt implementation key")
	}
	if _, exists := reg.implementations[key]; exists {
		panic(fmt.Sprintf("cannot register duplicate extfmt implementation with key: %s", key))
	}
	reg.implementations[key] = impl
}

func GetImplementation(key string) ExtFmt {
	reg.implementationsMutex.Lock()
	defer reg.implementationsMutex.Unlock()
	return reg.implementations[key]
}

// Keys lists the registered format keys, sorted.
func Keys() []string {
	reg.implementationsMutex.Lock()
	defer reg.implementationsMutex.Unlock()
	keys := make([]string, 0, len(reg.implementations))
	for k := range reg.implementations {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
