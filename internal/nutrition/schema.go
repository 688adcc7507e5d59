package nutrition

// FieldType is the JSON type of a declared output field.
type FieldType string

const (
	FieldString FieldType = "string"
	FieldNumber FieldType = "number"
)

type Field struct {
	Name        string
	Type        FieldType
	Description string
}

// OutputSchema declares the structure the model must answer with.
type OutputSchema struct {
	Fields   []Field
	Required []string
}

// Schema is the declared output for a nutrition lookup. Every field except
// cholesterol and sodium is required.
var Schema = OutputSchema{
	Fields: []Field{
		{Name: "foodName", Type: FieldString, Description: "The formalized name of the food (e.g. 'Medium Red Apple')"},
		{Name: "servingSize", Type: FieldString, Description: "The serving size used for the values (e.g. '1 medium (182g)')"},
		{Name: "calories", Type: FieldNumber, Description: "Total calories in kcal"},
		{Name: "protein", Type: FieldNumber, Description: "Protein in grams"},
		{Name: "carbs", Type: FieldNumber, Description: "Total carbohydrates in grams"},
		{Name: "fat", Type: FieldNumber, Description: "Total fat in grams"},
		{Name: "fiber", Type: FieldNumber, Description: "Dietary fiber in grams"},
		{Name: "sugar", Type: FieldNumber, Description: "Total sugar in grams"},
		{Name: "cholesterol", Type: FieldNumber, Description: "Cholesterol in milligrams"},
		{Name: "sodium", Type: FieldNumber, Description: "Sodium in milligrams"},
		{Name: "healthTip", Type: FieldString, Description: "A brief health insight or fun fact"},
	},
	Required: []string{"foodName", "servingSize", "calories", "protein", "carbs", "fat", "fiber", "sugar", "healthTip"},
}

// JSONSchema renders s as a JSON Schema object, the dialect accepted by the
// Claude tool input_schema and the Ollama format parameter.
func (s OutputSchema) JSONSchema() map[string]any {
	props := make(map[string]any, len(s.Fields))
	for _, f := range s.Fields {
		props[f.Name] = map[string]any{
			"type":        string(f.Type),
			"description": f.Description,
		}
	}
	required := make([]string, len(s.Required))
	copy(required, s.Required)
	return map[string]any{
		"type":       "object",
		"properties": props,
		"required":   required,
	}
}
