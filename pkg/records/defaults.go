package records

import "fmt"

// Table is a named list of record fields, used to describe seed data.
type Table struct {
	Name    string   `yaml:"name" json:"name"`
	Records []Fields `yaml:"records" json:"records"`
}

// Dataset is the canonical seed data a Store is (re)loaded from.
// Table order is preserved; it becomes the initial catalog order.
type Dataset []Table

// DefaultDataset returns the built-in seed: three tables with two records each.
func DefaultDataset() Dataset {
	return Dataset{
		{
			Name: "Ankara",
			Records: []Fields{
				{FirstName: "Samet Ege", LastName: "AŞIK", Song: "Master of Puppets", Artist: "Metallica", Released: Year(1986)},
				{FirstName: "Ahmet", LastName: "YILMAZ", Song: "Soldier of Fortune", Artist: "Deep Purple", Released: Year(1974)},
			},
		},
		{
			Name: "İstanbul",
			Records: []Fields{
				{FirstName: "Ali", LastName: "VELİ", Song: "Shape of You", Artist: "Ed Sheeran", Released: Year(2017)},
				{FirstName: "Zeynep", LastName: "ÇINAR", Song: "Blinding Lights", Artist: "The Weeknd", Released: Year(2019)},
			},
		},
		{
			Name: "İzmir",
			Records: []Fields{
				{FirstName: "Elif", LastName: "KAYA", Song: "Hallelujah", Artist: "Leonard Cohen", Released: Year(1984)},
				{FirstName: "Burak", LastName: "ÖZTÜRK", Song: "Rolling in the Deep", Artist: "Adele", Released: Year(2010)},
			},
		},
	}
}

// Names returns the table names in dataset order.
func (d Dataset) Names() []string {
	names := make([]string, 0, len(d))
	for _, t := range d {
		names = append(names, t.Name)
	}
	return names
}

// Lookup returns the seed table with exactly the given name.
func (d Dataset) Lookup(name string) (Table, bool) {
	for _, t := range d {
		if t.Name == name {
			return t, true
		}
	}
	return Table{}, false
}

// Validate checks table names are non-blank and unique and every seed record is valid.
func (d Dataset) Validate() error {
	seen := make(map[string]bool, len(d))
	for i, t := range d {
		if isBlank(t.Name) {
			return fmt.Errorf("table at index %d: name cannot be empty", i)
		}
		if seen[t.Name] {
			return fmt.Errorf("duplicate table name '%s'", t.Name)
		}
		seen[t.Name] = true

		for j, f := range t.Records {
			r := Record{}
			r.apply(f)
			if err := r.Validate(); err != nil {
				return fmt.Errorf("table '%s' record %d: %w", t.Name, j, err)
			}
		}
	}
	return nil
}

// instantiate builds fresh records (new IDs) for a seed table.
func (t Table) instantiate() []*Record {
	list := make([]*Record, 0, len(t.Records))
	for _, f := range t.Records {
		list = append(list, NewRecord(f))
	}
	return list
}
