// Package reporting summarises logged sales against the current catalog.
package reporting

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/angelmondragon/backoffice/pkg/db/models"
	"github.com/angelmondragon/backoffice/pkg/money"
	"github.com/shopspring/decimal"
)

type catalogLister interface {
	ListProducts() []models.Product
}

type saleSource interface {
	Records() []models.SaleRecord
}

// Popularity is how many units of one catalog product were sold.
type Popularity struct {
	ProductID string
	Name      string
	Sold      int
}

// Report is a point-in-time summary. Unknown counts sold ids that are no
// longer in the catalog.
type Report struct {
	TotalSales decimal.Decimal
	SaleCount  int
	Products   []Popularity
	Unknown    map[string]int
}

type Generator struct {
	catalog catalogLister
	sales   saleSource
}

func NewGenerator(catalog catalogLister, sales saleSource) (*Generator, error) {
	if catalog == nil || sales == nil {
		return nil, errors.New("catalog and sale source required")
	}
	return &Generator{catalog: catalog, sales: sales}, nil
}

// Generate counts every catalog product, starting from zero, in catalog order.
func (g *Generator) Generate() Report {
	products := g.catalog.ListProducts()
	records := g.sales.Records()

	report := Report{
		TotalSales: decimal.Zero,
		SaleCount:  len(records),
		Products:   make([]Popularity, len(products)),
		Unknown:    map[string]int{},
	}
	position := make(map[string]int, len(products))
	for i, p := range products {
		report.Products[i] = Popularity{ProductID: p.ID, Name: p.Name}
		position[p.ID] = i
	}

	for _, sale := range records {
		report.TotalSales = report.TotalSales.Add(sale.Total)
		for _, id := range sale.ProductIDs {
			if i, ok := position[id]; ok {
				report.Products[i].Sold++
				continue
			}
			report.Unknown[id]++
		}
	}
	return report
}

// Render formats the report as plain text.
func Render(report Report, symbol string) string {
	var b strings.Builder
	b.WriteString("Sales Report:\n")
	b.WriteString("Total Sales: " + money.Format(symbol, report.TotalSales) + "\n")
	b.WriteString("Product Popularity:\n")
	for _, p := range report.Products {
		fmt.Fprintf(&b, "%s: %d sold\n", p.Name, p.Sold)
	}
	if len(report.Unknown) > 0 {
		ids := make([]string, 0, len(report.Unknown))
		for id := range report.Unknown {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		b.WriteString("Unknown Products:\n")
		for _, id := range ids {
			fmt.Fprintf(&b, "%s: %d sold\n", id, report.Unknown[id])
		}
	}
	return b.String()
}
