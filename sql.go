package tagjson

import (
	"database/sql"
	"database/sql/driver"
	"fmt"
)

// Valuer stores v in a text column as tagged JSON.
//
//	_, err := db.ExecContext(ctx, `INSERT INTO events (payload) VALUES (?)`, codec.Valuer(event))
func (c *Codec) Valuer(v any) driver.Valuer {
	return columnValuer{codec: c, value: v}
}

// Scanner reads a tagged JSON column into dst. NULL scans to nil.
//
//	var payload any
//	err := db.QueryRowContext(ctx, `SELECT payload FROM events WHERE id = ?`, id).Scan(codec.Scanner(&payload))
func (c *Codec) Scanner(dst *any) sql.Scanner {
	return columnScanner{codec: c, dst: dst}
}

type columnValuer struct {
	codec *Codec
	value any
}

func (v columnValuer) Value() (driver.Value, error) {
	data, err := v.codec.Stringify(v.value)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

type columnScanner struct {
	codec *Codec
	dst   *any
}

func (s columnScanner) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*s.dst = nil
		return nil
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		return fmt.Errorf("cannot scan %T into tagged JSON", src)
	}

	v, err := s.codec.Parse(data)
	if err != nil {
		return err
	}
	*s.dst = v
	return nil
}
