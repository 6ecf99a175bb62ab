package memory_test

import (
	"testing"

	"github.com/quillhq/quill/pkg/store"
	"github.com/quillhq/quill/pkg/store/memory"
	"github.com/quillhq/quill/pkg/store/storetest"
)

func TestConformance(t *testing.T) {
	storetest.RunConformanceSuite(t, func(t *testing.T) store.Store {
		return memory.New()
	})
}
