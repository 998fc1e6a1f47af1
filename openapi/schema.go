package openapi

import (
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
)

var timeType = reflect.TypeOf(time.Time{})

func (o *OpenAPI) schemaRef(example any) *openapi3.SchemaRef {
	o.mu.Lock()
	defer o.mu.Unlock()

	if example == nil {
		return openapi3.NewObjectSchema().NewRef()
	}
	return o.schemaFor(reflect.TypeOf(example))
}

// schemaFor maps a Go type to a schema. Named structs are registered once as
// components and referenced afterwards.
func (o *OpenAPI) schemaFor(t reflect.Type) *openapi3.SchemaRef {
	if t.Kind() == reflect.Pointer {
		ref := o.schemaFor(t.Elem())
		if ref.Ref != "" {
			return &openapi3.SchemaRef{Value: &openapi3.Schema{AllOf: openapi3.SchemaRefs{ref}, Nullable: true}}
		}
		ref.Value.Nullable = true
		return ref
	}

	switch t.Kind() {
	case reflect.String:
		return openapi3.NewStringSchema().NewRef()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return openapi3.NewIntegerSchema().NewRef()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return openapi3.NewIntegerSchema().WithMin(0).NewRef()
	case reflect.Float32, reflect.Float64:
		return openapi3.NewFloat64Schema().NewRef()
	case reflect.Bool:
		return openapi3.NewBoolSchema().NewRef()
	case reflect.Slice, reflect.Array:
		array := openapi3.NewArraySchema()
		array.Items = o.schemaFor(t.Elem())
		return array.NewRef()
	case reflect.Map:
		object := openapi3.NewObjectSchema()
		object.AdditionalProperties = openapi3.AdditionalProperties{Schema: o.schemaFor(t.Elem())}
		return object.NewRef()
	case reflect.Struct:
		if t == timeType {
			return openapi3.NewDateTimeSchema().NewRef()
		}
		return o.structRef(t)
	default:
		return openapi3.NewObjectSchema().NewRef()
	}
}

func (o *OpenAPI) structRef(t reflect.Type) *openapi3.SchemaRef {
	if t.Name() == "" {
		return o.buildStruct(t).NewRef()
	}
	if name, ok := o.schemas[t]; ok {
		return openapi3.NewSchemaRef("#/components/schemas/"+name, o.spec.Components.Schemas[name].Value)
	}

	name := t.Name()
	for i := 2; o.spec.Components.Schemas[name] != nil; i++ {
		name = t.Name() + strconv.Itoa(i)
	}
	o.schemas[t] = name
	// registered before building so recursive types share the same value
	schema := openapi3.NewObjectSchema()
	o.spec.Components.Schemas[name] = schema.NewRef()
	*schema = *o.buildStruct(t)

	return openapi3.NewSchemaRef("#/components/schemas/"+name, schema)
}

func (o *OpenAPI) buildStruct(t reflect.Type) *openapi3.Schema {
	schema := openapi3.NewObjectSchema()
	schema.Properties = make(openapi3.Schemas)

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		tag := strings.Split(field.Tag.Get("json"), ",")
		if tag[0] == "-" {
			continue
		}

		if field.Anonymous && tag[0] == "" && field.Type.Kind() == reflect.Struct {
			embedded := o.buildStruct(field.Type)
			for name, prop := range embedded.Properties {
				schema.Properties[name] = prop
			}
			schema.Required = append(schema.Required, embedded.Required...)
			continue
		}

		name := field.Name
		if tag[0] != "" {
			name = tag[0]
		}

		ref := o.schemaFor(field.Type)
		rules, hasRules := field.Tag.Lookup("validate")
		if ref.Value != nil && hasRules {
			applyRules(ref.Value, rules)
		}
		if doc := field.Tag.Get("doc"); doc != "" && ref.Value != nil {
			ref.Value.Description = doc
		}
		schema.Properties[name] = ref

		if isRequired(field, tag, rules, hasRules) {
			schema.Required = append(schema.Required, name)
		}
	}

	return schema
}

func isRequired(field reflect.StructField, jsonTag []string, rules string, hasRules bool) bool {
	if hasRules {
		for _, rule := range strings.Split(rules, ",") {
			if rule == "required" {
				return true
			}
		}
		return false
	}
	for _, opt := range jsonTag[1:] {
		if opt == "omitempty" {
			return false
		}
	}
	return field.Type.Kind() != reflect.Pointer
}

// applyRules copies the validator constraints the document can express.
// Rules after "dive" apply to the items of a slice.
func applyRules(schema *openapi3.Schema, rules string) {
	target := schema
	for _, rule := range strings.Split(rules, ",") {
		key, param, _ := strings.Cut(rule, "=")
		switch key {
		case "dive":
			if schema.Items != nil && schema.Items.Value != nil {
				target = schema.Items.Value
			}
		case "email":
			target.Format = "email"
		case "uuid":
			target.Format = "uuid"
		case "url":
			target.Format = "uri"
		case "oneof":
			for _, v := range strings.Fields(param) {
				target.Enum = append(target.Enum, v)
			}
		case "min", "max", "gte", "lte", "len":
			applyBound(target, key, param)
		}
	}
}

func applyBound(schema *openapi3.Schema, key, param string) {
	n, err := strconv.ParseFloat(param, 64)
	if err != nil {
		return
	}
	isLength := schema.Type.Is(openapi3.TypeString) || schema.Type.Is(openapi3.TypeArray)
	lower := key == "min" || key == "gte" || key == "len"
	upper := key == "max" || key == "lte" || key == "len"

	switch {
	case isLength && schema.Type.Is(openapi3.TypeString):
		if lower {
			schema.MinLength = uint64(n)
		}
		if upper {
			schema.MaxLength = openapi3.Uint64Ptr(uint64(n))
		}
	case isLength:
		if lower {
			schema.MinItems = uint64(n)
		}
		if upper {
			schema.MaxItems = openapi3.Uint64Ptr(uint64(n))
		}
	default:
		if lower {
			schema.Min = openapi3.Float64Ptr(n)
		}
		if upper {
			schema.Max = openapi3.Float64Ptr(n)
		}
	}
}
