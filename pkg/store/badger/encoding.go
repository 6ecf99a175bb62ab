package badger

import (
	"encoding/json"
	"fmt"

	"github.com/quillhq/quill/pkg/models"
)

// BadgerDB is a key-value store, so prefixed keys organize the data into
// logical namespaces and keep range scans cheap.
//
// Data Type          Prefix   Key Format                  Value Type
// =====================================================================
// Articles           "a:"     a:<collection>:<uuid>       Article (JSON)
// Collection marker  "c:"     c:<collection>              empty

const (
	prefixArticle    = "a:"
	prefixCollection = "c:"
)

// keyArticle generates a key for article data: "a:<collection>:<uuid>"
func keyArticle(collection, id string) []byte {
	return []byte(prefixArticle + collection + ":" + id)
}

// keyArticlePrefix generates the range-scan prefix for a collection: "a:<collection>:"
func keyArticlePrefix(collection string) []byte {
	return []byte(prefixArticle + collection + ":")
}

// keyCollection generates the marker key for a collection: "c:<collection>"
func keyCollection(name string) []byte {
	return []byte(prefixCollection + name)
}

func encodeArticle(a *models.Article) ([]byte, error) {
	data, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("failed to encode article: %w", err)
	}
	return data, nil
}

func decodeArticle(data []byte) (*models.Article, error) {
	var a models.Article
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("failed to decode article: %w", err)
	}
	return &a, nil
}
