package utility

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
)

// ToMap chuyển struct (hoặc map) thành map theo tag bson
func ToMap(s interface{}) (map[string]interface{}, error) {
	var result map[string]interface{}
	raw, err := bson.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("bson marshal failed: %w", err)
	}
	if err := bson.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("bson unmarshal failed: %w", err)
	}
	return result, nil
}
