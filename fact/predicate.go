package fact

// Predicate is the closed categorical tag classifying what kind of
// observation a Fact records. The set is open for extension; values above
// PredUser are reserved for embedding applications.
type Predicate uint8

const (
	// PredInvalid is the zero predicate; the store rejects it.
	PredInvalid Predicate = iota
	// PredIsToken marks a lexical token occurrence.
	PredIsToken
	// PredIsIdent marks an identifier occurrence.
	PredIsIdent
	// PredIsFunction marks a function or method definition.
	PredIsFunction
	// PredIsClass marks a class or type definition.
	PredIsClass
	// PredIsObject marks an object/struct literal.
	PredIsObject
	// PredIsProperty marks a property or field name.
	PredIsProperty
	// PredIsValue marks a literal value position.
	PredIsValue
	// PredHasName links a subject to an interned name.
	PredHasName
	// PredHasType links a subject to an interned type name.
	PredHasType
	// PredRefersTo links a subject to another fact.
	PredRefersTo

	// PredUser is the first predicate value available to embedding
	// applications.
	PredUser Predicate = 128
)

var predicateNames = map[Predicate]string{
	PredInvalid:    "invalid",
	PredIsToken:    "is_token",
	PredIsIdent:    "is_ident",
	PredIsFunction: "is_function",
	PredIsClass:    "is_class",
	PredIsObject:   "is_object",
	PredIsProperty: "is_property",
	PredIsValue:    "is_value",
	PredHasName:    "has_name",
	PredHasType:    "has_type",
	PredRefersTo:   "refers_to",
}

// String returns the canonical snake_case name of the predicate.
func (p Predicate) String() string {
	if name, ok := predicateNames[p]; ok {
		return name
	}
	return "user_" + itoa(uint64(p))
}

// itoa is a minimal integer formatter to keep strconv off this leaf package.
func itoa(v uint64) string {
	if v == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	return string(buf[i:])
}
