package storage

import (
	"cmp"
	"sort"
	"strings"

	"google.golang.org/protobuf/types/known/structpb"
)

// Document is the persisted shape of an entity: its namespaced key and a
// schemaless body. Codecs own the mapping between bodies and entities.
type Document struct {
	Key  string
	Body *structpb.Struct
}

func NewDocument(key string, fields map[string]*structpb.Value) Document {
	return Document{Key: key, Body: &structpb.Struct{Fields: fields}}
}

// Field returns the raw value of a field, if set.
func (d Document) Field(name string) (*structpb.Value, bool) {
	if d.Body == nil {
		return nil, false
	}
	v, ok := d.Body.Fields[name]
	return v, ok && v != nil
}

// Without returns a copy of d lacking the given field.
func (d Document) Without(field string) Document {
	fields := make(map[string]*structpb.Value, len(d.Body.GetFields()))
	for k, v := range d.Body.GetFields() {
		if k != field {
			fields[k] = v
		}
	}
	return NewDocument(d.Key, fields)
}

// Condition is an equality predicate on a text field.
type Condition struct {
	Field string
	Value string
}

func Equal(field, value string) Condition {
	return Condition{Field: field, Value: value}
}

// Query selects documents by key prefix, filters them with equality
// conditions and orders them by a field. Key order breaks ties.
type Query struct {
	Prefix     string
	Where      []Condition
	OrderBy    string
	Descending bool
	Limit      int
}

// Matches reports whether doc belongs to the query result, regardless of limit.
func (q Query) Matches(doc Document) bool {
	if !strings.HasPrefix(doc.Key, q.Prefix) {
		return false
	}
	for _, c := range q.Where {
		v, ok := doc.Field(c.Field)
		if !ok {
			return false
		}
		s, isString := v.GetKind().(*structpb.Value_StringValue)
		if !isString || s.StringValue != c.Value {
			return false
		}
	}
	return true
}

func (q Query) apply(docs []Document) []Document {
	sort.SliceStable(docs, func(i, j int) bool {
		c := 0
		if q.OrderBy != "" {
			a, _ := docs[i].Field(q.OrderBy)
			b, _ := docs[j].Field(q.OrderBy)
			c = compareValues(a, b)
		}
		if c == 0 {
			c = strings.Compare(docs[i].Key, docs[j].Key)
		}
		if q.Descending {
			return c > 0
		}
		return c < 0
	})
	if q.Limit > 0 && len(docs) > q.Limit {
		docs = docs[:q.Limit]
	}
	return docs
}

// compareValues orders missing values first, then numbers, then strings.
func compareValues(a, b *structpb.Value) int {
	ra, rb := rank(a), rank(b)
	if ra != rb {
		return cmp.Compare(ra, rb)
	}
	switch ra {
	case 1:
		return cmp.Compare(a.GetNumberValue(), b.GetNumberValue())
	case 2:
		return strings.Compare(a.GetStringValue(), b.GetStringValue())
	default:
		return 0
	}
}

func rank(v *structpb.Value) int {
	switch v.GetKind().(type) {
	case *structpb.Value_NumberValue:
		return 1
	case *structpb.Value_StringValue:
		return 2
	default:
		return 0
	}
}
