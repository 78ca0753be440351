package model

import (
	"context"
	"database/sql/driver"
	"fmt"

	"github.com/Prashant-2024/Rental-App/internal/geo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"
)

// SRID of every stored point (WGS84)
const SRID = 4326

// Point is a WGS84 point column. On PostgreSQL it is a PostGIS
// geometry(Point,4326); other dialects store its WKT text.
type Point geo.Coordinates

// GormDBDataType picks the column type for the active dialect
func (Point) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return fmt.Sprintf("geometry(Point,%d)", SRID)
	}
	return "text"
}

// GormValue builds the insert expression for the active dialect
func (p Point) GormValue(ctx context.Context, db *gorm.DB) clause.Expr {
	if db.Dialector.Name() == "postgres" {
		return clause.Expr{
			SQL:  "ST_SetSRID(ST_MakePoint(?, ?), ?)",
			Vars: []interface{}{p.Longitude, p.Latitude, SRID},
		}
	}
	return clause.Expr{SQL: "?", Vars: []interface{}{geo.FormatPoint(geo.Coordinates(p))}}
}

// Value implements driver.Valuer
func (p Point) Value() (driver.Value, error) {
	return geo.FormatPoint(geo.Coordinates(p)), nil
}

// Scan implements sql.Scanner for WKT text
func (p *Point) Scan(value interface{}) error {
	var text string
	switch v := value.(type) {
	case string:
		text = v
	case []byte:
		text = string(v)
	case nil:
		text = ""
	default:
		return fmt.Errorf("cannot scan %T into Point", value)
	}

	c, err := geo.ParsePoint(text)
	if err != nil {
		return err
	}
	*p = Point(c)
	return nil
}
