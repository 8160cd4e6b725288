package records

// Collection is a free-form record collection managed through the generic
// record endpoints.
type Collection string

const (
	Customers Collection = "customers"
	Projects  Collection = "projects"
	Bookings  Collection = "bookings"
)

// Document is a stored free-form record. The id, created_at and updated_at
// fields are owned by the store.
type Document map[string]any

func (d Document) ID() string {
	id, _ := d["id"].(string)
	return id
}

// Schema describes how a collection is listed and what a new document needs.
type Schema struct {
	Collection  Collection
	Required    []string
	FilterField string
	OrderField  string
	OrderDesc   bool
	Defaults    map[string]any
}

var schemas = map[Collection]Schema{
	Customers: {
		Collection:  Customers,
		Required:    []string{"name"},
		FilterField: "type",
		OrderField:  "name",
	},
	Projects: {
		Collection:  Projects,
		Required:    []string{"name"},
		FilterField: "status",
		OrderField:  "created_at",
		OrderDesc:   true,
	},
	Bookings: {
		Collection:  Bookings,
		Required:    []string{"customer_name", "service_date"},
		FilterField: "status",
		OrderField:  "created_at",
		OrderDesc:   true,
		Defaults:    map[string]any{"status": "pending"},
	},
}

// SchemaFor returns ErrUnknownCollection for a collection that is not managed
// through the generic endpoints.
func SchemaFor(name string) (Schema, error) {
	schema, ok := schemas[Collection(name)]
	if !ok {
		return Schema{}, ErrUnknownCollection
	}
	return schema, nil
}
