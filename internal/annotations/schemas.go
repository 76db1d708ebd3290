package annotations

// Parameter names shared by the builtin schemas
const (
	ParamClass     = "Class"
	ParamMethod    = "Method"
	ParamGroup     = "Group"
	ParamMatch     = "Match"
	ParamSerialize = "Serialize"
	ParamSealed    = "Sealed"
)

// RegisterBuiltinSchemas registers the schemas for both artifact kinds.
func RegisterBuiltinSchemas(registry AnnotationRegistry) error {
	if err := registry.Register(UnionAnnotation, unionSchema()); err != nil {
		return err
	}
	return registry.Register(AsyncAnnotation, asyncSchema())
}

// unionSchema describes //loom::union on a type declaration. The annotated
// interface (reference style) or struct (value style) becomes a closed
// variant set; each toggle controls one generated capability block.
func unionSchema() AnnotationSchema {
	return AnnotationSchema{
		Type:        UnionAnnotation,
		Description: "Marks a type declaration as a closed union of variants",
		Parameters: map[string]ParameterSpec{
			ParamMatch: {
				Type:         BoolType,
				DefaultValue: true,
				Description:  "Generate the structural match helper",
			},
			ParamSerialize: {
				Type:         BoolType,
				DefaultValue: true,
				Description:  "Generate the polymorphic serialization registration",
			},
			ParamSealed: {
				Type:         BoolType,
				DefaultValue: true,
				Description:  "Generate sealed marker methods for every variant",
			},
			ParamGroup: {
				Type:        StringType,
				Description: "Override the group the generated blocks are emitted under",
			},
		},
		Examples: []string{
			"//loom::union",
			"//loom::union -Serialize=false",
			"//loom::union -Match=false -Sealed=false",
		},
	}
}

// asyncSchema describes //loom::async on a container type or on individual
// members. All three naming overrides are {0}-parameterized at the defaults
// level; an explicit value here is taken verbatim.
func asyncSchema() AnnotationSchema {
	return AnnotationSchema{
		Type:        AsyncAnnotation,
		Description: "Marks a container whose task-returning members get synchronous forwarding views",
		Parameters: map[string]ParameterSpec{
			ParamClass: {
				Type:        StringType,
				Description: "Name of the generated wrapper type",
			},
			ParamMethod: {
				Type:        StringType,
				Description: "Name of the generated forwarding method",
			},
			ParamGroup: {
				Type:        StringType,
				Description: "Override the group the generated blocks are emitted under",
			},
		},
		Examples: []string{
			"//loom::async",
			"//loom::async -Class=WidgetClient",
			"//loom::async -Method=FetchBlocking -Group=widgets",
		},
	}
}
