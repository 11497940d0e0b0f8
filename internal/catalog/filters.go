package catalog

// FilterValues holds the distinct values currently present across all
// cars, used to populate the browse filters on the website.
type FilterValues struct {
	BodyTypes     []string `json:"body_types"`
	FuelTypes     []string `json:"fuel_types"`
	Transmissions []string `json:"transmissions"`
}

// DistinctFilterValues collects the distinct non-null body types, fuel
// types and transmissions.
func (s *Store) DistinctFilterValues() (*FilterValues, error) {
	values := &FilterValues{
		BodyTypes:     []string{},
		FuelTypes:     []string{},
		Transmissions: []string{},
	}

	var err error
	if values.BodyTypes, err = s.distinctColumn("body_type"); err != nil {
		return nil, err
	}
	if values.FuelTypes, err = s.distinctColumn("fuel_type"); err != nil {
		return nil, err
	}
	if values.Transmissions, err = s.distinctColumn("transmission"); err != nil {
		return nil, err
	}
	return values, nil
}

// column names are fixed at the call sites above, never user input.
func (s *Store) distinctColumn(column string) ([]string, error) {
	rows, err := s.DB.Query(
		"SELECT DISTINCT " + column + " FROM cars WHERE " + column + " IS NOT NULL AND " + column + " <> '' ORDER BY " + column,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	values := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}
