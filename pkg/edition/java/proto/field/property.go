package field

import "go.minekube.com/bot/pkg/util/uuid"

// Property is a signed game profile property of a spawned player.
type Property struct {
	Name      string
	Value     string
	Signature string
}

// Properties is a VarInt count-prefixed list of profile properties.
func Properties(name string, v *[]Property) Field {
	return Array(name, v, CountVarInt, func(p *Property) List {
		return List{
			String("name", &p.Name),
			String("value", &p.Value),
			String("signature", &p.Signature),
		}
	})
}

// EntityProperty is an entity attribute with its modifiers.
type EntityProperty struct {
	Key       string
	Value     float64
	Modifiers []Modifier
}

// Modifier modifies an entity attribute.
type Modifier struct {
	UUID      uuid.UUID
	Amount    float64
	Operation int8
}

// EntityProperties is a 32-bit count-prefixed list of entity attributes.
func EntityProperties(name string, v *[]EntityProperty) Field {
	return Array(name, v, CountInt32, func(p *EntityProperty) List {
		return List{
			String("key", &p.Key),
			Float64("value", &p.Value),
			Array("modifiers", &p.Modifiers, CountInt16, func(m *Modifier) List {
				return List{
					UUID("uuid", &m.UUID),
					Float64("amount", &m.Amount),
					Int8("operation", &m.Operation),
				}
			}),
		}
	})
}
