package search

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
	"github.com/blevesearch/bleve/v2/mapping"
)

// buildIndexMapping creates the Bleve index mapping for entry documents.
//
// Location is the primary search target. Tags use the keyword analyzer so
// compound slugs ("road-trip") stay intact for exact filtering.
func buildIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultAnalyzer = en.AnalyzerName

	docMapping := bleve.NewDocumentMapping()

	// --- Text fields ---

	locationFieldMapping := bleve.NewTextFieldMapping()
	locationFieldMapping.Analyzer = en.AnalyzerName
	locationFieldMapping.Store = true
	locationFieldMapping.IncludeTermVectors = true // For highlighting
	docMapping.AddFieldMappingsAt("location", locationFieldMapping)

	// Not stored; the API reads descriptions from the database.
	descFieldMapping := bleve.NewTextFieldMapping()
	descFieldMapping.Analyzer = en.AnalyzerName
	descFieldMapping.Store = false
	descFieldMapping.IncludeTermVectors = true
	docMapping.AddFieldMappingsAt("description", descFieldMapping)

	// --- Keyword fields ---

	idFieldMapping := bleve.NewTextFieldMapping()
	idFieldMapping.Analyzer = keyword.Name
	docMapping.AddFieldMappingsAt("id", idFieldMapping)

	tagsFieldMapping := bleve.NewTextFieldMapping()
	tagsFieldMapping.Analyzer = keyword.Name
	tagsFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("tags", tagsFieldMapping)

	// --- Numeric fields ---

	entryIDFieldMapping := bleve.NewNumericFieldMapping()
	entryIDFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("entry_id", entryIDFieldMapping)

	userIDFieldMapping := bleve.NewNumericFieldMapping()
	userIDFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("user_id", userIDFieldMapping)

	dateFieldMapping := bleve.NewNumericFieldMapping()
	dateFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("date", dateFieldMapping)

	createdAtFieldMapping := bleve.NewNumericFieldMapping()
	createdAtFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("created_at", createdAtFieldMapping)

	indexMapping.AddDocumentMapping("_default", docMapping)

	return indexMapping
}
