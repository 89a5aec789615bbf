package models

// Bucket keys for outcomes that do not come from a block's @type.
const (
	TypeUnknown    = "UnknownType"
	TypeNoSchema   = "NoSchema"
	TypeParseError = "ParseError"
	TypeCrawlError = "CrawlError"
)

// Record is one row of crawl output. Fields holds the flattened schema
// key/values on success and is nil on error records. Records are never
// mutated after being added to a ResultSet.
type Record struct {
	SourceURL    string
	SchemaFound  bool
	ErrorMessage string
	Fields       map[string]any
}

// ResultSet groups records by schema type. It preserves the order types were
// first seen and the order records were added within a type, so output
// follows crawl order.
type ResultSet struct {
	order   []string
	buckets map[string][]Record
}

func NewResultSet() *ResultSet {
	return &ResultSet{buckets: make(map[string][]Record)}
}

// Add appends rec to the bucket for schemaType.
func (rs *ResultSet) Add(schemaType string, rec Record) {
	if _, ok := rs.buckets[schemaType]; !ok {
		rs.order = append(rs.order, schemaType)
	}
	rs.buckets[schemaType] = append(rs.buckets[schemaType], rec)
}

// Types returns bucket keys in first-seen order.
func (rs *ResultSet) Types() []string {
	return rs.order
}

// Records returns the records bucketed under schemaType in insertion order.
func (rs *ResultSet) Records(schemaType string) []Record {
	return rs.buckets[schemaType]
}

// Len returns the total record count across all buckets.
func (rs *ResultSet) Len() int {
	n := 0
	for _, recs := range rs.buckets {
		n += len(recs)
	}
	return n
}
