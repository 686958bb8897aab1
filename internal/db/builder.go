package db

import (
	"strconv"
	"strings"
)

// IndexBuilder is a fluent builder for index definitions.
type IndexBuilder struct {
	def IndexDefinition
}

// NewIndex starts building a regular index definition.
func NewIndex(name string) *IndexBuilder {
	return &IndexBuilder{
		def: IndexDefinition{
			Name: name,
			Kind: KindRegular,
		},
	}
}

// On sets the target collection.
func (b *IndexBuilder) On(collection string) *IndexBuilder {
	b.def.Collection = collection
	return b
}

// Ascending adds an ascending key.
func (b *IndexBuilder) Ascending(name string) *IndexBuilder {
	b.def.Fields = append(b.def.Fields, IndexField{Name: name, Type: IndexFieldAscending})
	return b
}

// Descending adds a descending key.
func (b *IndexBuilder) Descending(name string) *IndexBuilder {
	b.def.Fields = append(b.def.Fields, IndexField{Name: name, Type: IndexFieldDescending})
	return b
}

// Text adds a $text key and makes the index a text index.
func (b *IndexBuilder) Text(name string) *IndexBuilder {
	b.def.Kind = KindText
	b.def.Fields = append(b.def.Fields, IndexField{Name: name, Type: IndexFieldText})
	return b
}

// SearchString adds an analyzed string field and makes the index a search index.
func (b *IndexBuilder) SearchString(name, analyzer string) *IndexBuilder {
	b.def.Kind = KindSearch
	b.def.Fields = append(b.def.Fields, IndexField{Name: name, Type: IndexFieldString, Analyzer: analyzer})
	return b
}

// Vector adds a vector field and makes the index a vector search index.
func (b *IndexBuilder) Vector(path string, dim int, similarity Similarity) *IndexBuilder {
	b.def.Kind = KindVectorSearch
	b.def.Fields = append(b.def.Fields, IndexField{
		Name:       path,
		Type:       IndexFieldVector,
		VectorDim:  dim,
		Similarity: similarity,
	})
	return b
}

// Build validates and returns the index definition.
func (b *IndexBuilder) Build() (*IndexDefinition, error) {
	if err := b.def.Validate(); err != nil {
		return nil, err
	}
	return &b.def, nil
}

// MustBuild calls Build and panics on error.
func (b *IndexBuilder) MustBuild() *IndexDefinition {
	def, err := b.Build()
	if err != nil {
		panic(err)
	}
	return def
}

// String returns a debug representation of the index.
func (idx *IndexDefinition) String() string {
	parts := []string{string(idx.Kind), idx.Collection + "." + idx.Name}
	for i := range idx.Fields {
		f := &idx.Fields[i]
		switch f.Type {
		case IndexFieldAscending:
			parts = append(parts, f.Name+":1")
		case IndexFieldDescending:
			parts = append(parts, f.Name+":-1")
		case IndexFieldText:
			parts = append(parts, f.Name+":text")
		case IndexFieldString:
			parts = append(parts, f.Name+":string("+f.Analyzer+")")
		case IndexFieldVector:
			parts = append(parts, f.Name+":vector("+strconv.Itoa(f.VectorDim)+","+string(f.Similarity)+")")
		}
	}
	return strings.Join(parts, " ")
}
