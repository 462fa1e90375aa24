package entity_test

import (
	"fmt"
	"time"

	"github.com/medcodigos/owid-grapher/entity"
	"github.com/medcodigos/owid-grapher/table"
)

// ExampleOptions lists the selectable entities for a two-country dataset:
// countries first, then the continents present, then World.
func ExampleOptions() {
	epoch := time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC)
	rows := []table.Row{
		{Code: "ITA", Name: "Italy", Date: epoch, Cells: map[string]table.Cell{}},
		{Code: "AUS", Name: "Australia", Date: epoch, Cells: map[string]table.Cell{}},
	}
	lookup := entity.NewLookup([][2]string{
		{"ITA", "Europe"},
		{"AUS", "Oceania"},
	})

	opts, err := entity.Options(rows, lookup)
	if err != nil {
		fmt.Println("error:", err)

		return
	}
	for _, o := range opts {
		fmt.Printf("%s synthetic=%v\n", o.Name, o.Synthetic)
	}
	// Output:
	// Italy synthetic=false
	// Australia synthetic=false
	// Europe synthetic=true
	// Oceania synthetic=true
	// World synthetic=true
}
