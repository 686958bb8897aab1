package db

import (
	"errors"
	"strconv"
)

// IndexKind selects how an index is provisioned.
type IndexKind string

const (
	// KindRegular is a B-tree index created through createIndexes.
	KindRegular IndexKind = "regular"
	// KindText is a legacy $text index.
	KindText IndexKind = "text"
	// KindSearch is a full-text search index.
	KindSearch IndexKind = "search"
	// KindVectorSearch is an approximate nearest neighbour index.
	KindVectorSearch IndexKind = "vectorSearch"
)

// Similarity is the vector similarity function of a vector search index.
type Similarity string

const (
	// SimilarityCosine is cosine similarity.
	SimilarityCosine Similarity = "cosine"
	// SimilarityEuclidean is Euclidean distance.
	SimilarityEuclidean Similarity = "euclidean"
	// SimilarityDotProduct is dot product.
	SimilarityDotProduct Similarity = "dotProduct"
)

// IndexFieldType enumerates supported index field types.
type IndexFieldType int

const (
	// IndexFieldAscending is an ascending key.
	IndexFieldAscending IndexFieldType = iota
	// IndexFieldDescending is a descending key.
	IndexFieldDescending
	// IndexFieldText is a $text key.
	IndexFieldText
	// IndexFieldString is an analyzed search field.
	IndexFieldString
	// IndexFieldVector is a vector field.
	IndexFieldVector
)

// IndexField describes a single indexed path.
type IndexField struct {
	Name string
	Type IndexFieldType

	// search options
	Analyzer string

	// vector options
	VectorDim  int
	Similarity Similarity
}

// IndexDefinition is a complete index definition on one collection.
type IndexDefinition struct {
	Name       string
	Collection string
	Kind       IndexKind
	Fields     []IndexField
}

// Validate checks that the index definition is well-formed.
func (idx *IndexDefinition) Validate() error {
	if idx.Name == "" {
		return errors.New("index name is required")
	}
	if !IsValidIdentifier(idx.Name) {
		return errors.New("index name contains invalid characters")
	}
	if idx.Collection == "" {
		return errors.New("index collection is required")
	}
	if len(idx.Fields) == 0 {
		return errors.New("at least one field is required")
	}

	seen := make(map[string]bool)
	for i := range idx.Fields {
		f := &idx.Fields[i]
		if f.Name == "" {
			return errors.New("field name is required at index " + strconv.Itoa(i))
		}
		if seen[f.Name] {
			return errors.New("duplicate field name: " + f.Name)
		}
		seen[f.Name] = true

		if !idx.Kind.accepts(f.Type) {
			return errors.New("field " + f.Name + " is not allowed in a " + string(idx.Kind) + " index")
		}
		if f.Type == IndexFieldVector && f.VectorDim <= 0 {
			return errors.New("vector field requires positive dimensions")
		}
	}

	return nil
}

func (k IndexKind) accepts(t IndexFieldType) bool {
	switch k {
	case KindRegular:
		return t == IndexFieldAscending || t == IndexFieldDescending
	case KindText:
		return t == IndexFieldText
	case KindSearch:
		return t == IndexFieldString
	case KindVectorSearch:
		return t == IndexFieldVector
	}
	return false
}

// IsSearchIndex reports whether the index is managed through the search index API.
func (idx *IndexDefinition) IsSearchIndex() bool {
	return idx.Kind == KindSearch || idx.Kind == KindVectorSearch
}

// IsValidIdentifier returns true if s matches [a-zA-Z0-9_:-]+.
func IsValidIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		isAlpha := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		isDigit := r >= '0' && r <= '9'
		isSpecial := r == '_' || r == ':' || r == '-'
		if !isAlpha && !isDigit && !isSpecial {
			return false
		}
	}
	return true
}
