package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringArray 字符串数组，以 JSON 存储（标签等）
type StringArray []string

// Value 实现 driver.Valuer 接口
func (s StringArray) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	return marshalJSONColumn(s)
}

// Scan 实现 sql.Scanner 接口
func (s *StringArray) Scan(value interface{}) error {
	*s = StringArray{}
	return scanJSONColumn(value, s)
}

// ProductImage 商品图片
type ProductImage struct {
	URL string `json:"url"`
	Alt string `json:"alt"`
}

// ProductImages 商品图片列表，以 JSON 存储
type ProductImages []ProductImage

// Value 实现 driver.Valuer 接口
func (p ProductImages) Value() (driver.Value, error) {
	if p == nil {
		return "[]", nil
	}
	return marshalJSONColumn(p)
}

// Scan 实现 sql.Scanner 接口
func (p *ProductImages) Scan(value interface{}) error {
	*p = ProductImages{}
	return scanJSONColumn(value, p)
}

// Location 商品所在地
type Location struct {
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
}

// Value 实现 driver.Valuer 接口
func (l Location) Value() (driver.Value, error) {
	return marshalJSONColumn(l)
}

// Scan 实现 sql.Scanner 接口
func (l *Location) Scan(value interface{}) error {
	*l = Location{}
	return scanJSONColumn(value, l)
}

func marshalJSONColumn(v interface{}) (driver.Value, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(body), nil
}

// scanJSONColumn 兼容 sqlite 返回 string 与 postgres 返回 []byte 两种情况
func scanJSONColumn(value interface{}, dest interface{}) error {
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		if len(v) == 0 {
			return nil
		}
		return json.Unmarshal(v, dest)
	case string:
		if v == "" {
			return nil
		}
		return json.Unmarshal([]byte(v), dest)
	default:
		return fmt.Errorf("unsupported json column type %T", value)
	}
}
