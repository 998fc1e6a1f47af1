package openapi

import (
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

type RouteBuilder struct {
	openapi   *OpenAPI
	method    string
	path      string
	operation *openapi3.Operation
}

func (rb *RouteBuilder) extractPathParams() {
	for _, part := range strings.Split(rb.path, "/") {
		if name, ok := strings.CutPrefix(part, ":"); ok {
			rb.PathParam(name, "")
		}
	}
}

func (rb *RouteBuilder) Summary(summary string) *RouteBuilder {
	rb.operation.Summary = summary
	return rb
}

func (rb *RouteBuilder) Description(description string) *RouteBuilder {
	rb.operation.Description = description
	return rb
}

func (rb *RouteBuilder) OperationID(id string) *RouteBuilder {
	rb.operation.OperationID = id
	return rb
}

func (rb *RouteBuilder) Tags(tags ...string) *RouteBuilder {
	rb.operation.Tags = append(rb.operation.Tags, tags...)
	return rb
}

func (rb *RouteBuilder) PathParam(name, description string) *ParamBuilder {
	param := rb.param(name, openapi3.ParameterInPath)
	param.Description = description
	param.Required = true
	return &ParamBuilder{route: rb, param: param}
}

func (rb *RouteBuilder) QueryParam(name, description string) *ParamBuilder {
	param := rb.param(name, openapi3.ParameterInQuery)
	param.Description = description
	return &ParamBuilder{route: rb, param: param}
}

func (rb *RouteBuilder) param(name, in string) *openapi3.Parameter {
	for _, p := range rb.operation.Parameters {
		if p.Value != nil && p.Value.Name == name && p.Value.In == in {
			return p.Value
		}
	}

	param := &openapi3.Parameter{
		Name:   name,
		In:     in,
		Schema: openapi3.NewStringSchema().NewRef(),
	}
	rb.operation.Parameters = append(rb.operation.Parameters, &openapi3.ParameterRef{Value: param})
	return param
}

// Body documents a required JSON body shaped like example.
func (rb *RouteBuilder) Body(example any, description string) *RouteBuilder {
	rb.operation.RequestBody = &openapi3.RequestBodyRef{
		Value: openapi3.NewRequestBody().
			WithDescription(description).
			WithRequired(true).
			WithJSONSchemaRef(rb.openapi.schemaRef(example)),
	}
	return rb
}

func (rb *RouteBuilder) BodyMultipart(description string) *MultipartBuilder {
	return &MultipartBuilder{
		route:       rb,
		description: description,
		schema:      openapi3.NewObjectSchema(),
	}
}

type MultipartBuilder struct {
	route       *RouteBuilder
	description string
	schema      *openapi3.Schema
}

func (mb *MultipartBuilder) Field(name string, required bool) *MultipartBuilder {
	return mb.add(name, openapi3.NewStringSchema(), required)
}

func (mb *MultipartBuilder) FileField(name string, required bool) *MultipartBuilder {
	return mb.add(name, openapi3.NewStringSchema().WithFormat("binary"), required)
}

func (mb *MultipartBuilder) add(name string, schema *openapi3.Schema, required bool) *MultipartBuilder {
	mb.schema.Properties[name] = schema.NewRef()
	if required {
		mb.schema.Required = append(mb.schema.Required, name)
	}
	return mb
}

func (mb *MultipartBuilder) Done() *RouteBuilder {
	mb.route.operation.RequestBody = &openapi3.RequestBodyRef{
		Value: openapi3.NewRequestBody().
			WithDescription(mb.description).
			WithRequired(len(mb.schema.Required) > 0).
			WithFormDataSchema(mb.schema),
	}
	return mb.route
}

// Response documents a status. A nil example means no body.
func (rb *RouteBuilder) Response(statusCode int, example any, description string) *RouteBuilder {
	resp := openapi3.NewResponse().WithDescription(description)
	if example != nil {
		resp.Content = openapi3.NewContentWithJSONSchemaRef(rb.openapi.schemaRef(example))
	}
	rb.operation.Responses.Set(strconv.Itoa(statusCode), &openapi3.ResponseRef{Value: resp})
	return rb
}

func (rb *RouteBuilder) ResponseBinary(statusCode int, contentType, description string) *RouteBuilder {
	resp := openapi3.NewResponse().WithDescription(description)
	resp.Content = openapi3.Content{
		contentType: openapi3.NewMediaType().WithSchema(openapi3.NewStringSchema().WithFormat("binary")),
	}
	rb.operation.Responses.Set(strconv.Itoa(statusCode), &openapi3.ResponseRef{Value: resp})
	return rb
}

// Header documents a string response header on an already documented status.
func (rb *RouteBuilder) Header(statusCode int, name, description string) *RouteBuilder {
	resp := rb.operation.Responses.Value(strconv.Itoa(statusCode))
	if resp == nil || resp.Value == nil {
		return rb
	}
	if resp.Value.Headers == nil {
		resp.Value.Headers = make(openapi3.Headers)
	}
	resp.Value.Headers[name] = &openapi3.HeaderRef{
		Value: &openapi3.Header{Parameter: openapi3.Parameter{
			Description: description,
			Schema:      openapi3.NewStringSchema().NewRef(),
		}},
	}
	return rb
}

// Security requires one of the named schemes.
func (rb *RouteBuilder) Security(schemes ...string) *RouteBuilder {
	if rb.operation.Security == nil {
		rb.operation.Security = openapi3.NewSecurityRequirements()
	}
	for _, scheme := range schemes {
		rb.operation.Security.With(openapi3.NewSecurityRequirement().Authenticate(scheme))
	}
	return rb
}

func (rb *RouteBuilder) Build() {
	rb.openapi.addOperation(rb.method, rb.path, rb.operation)
}

type ParamBuilder struct {
	route *RouteBuilder
	param *openapi3.Parameter
}

func (pb *ParamBuilder) TypeInt() *ParamBuilder {
	pb.param.Schema = openapi3.NewIntegerSchema().NewRef()
	return pb
}

func (pb *ParamBuilder) TypeBool() *ParamBuilder {
	pb.param.Schema = openapi3.NewBoolSchema().NewRef()
	return pb
}

func (pb *ParamBuilder) Format(format string) *ParamBuilder {
	pb.param.Schema.Value.Format = format
	return pb
}

func (pb *ParamBuilder) Enum(values ...string) *ParamBuilder {
	for _, v := range values {
		pb.param.Schema.Value.Enum = append(pb.param.Schema.Value.Enum, v)
	}
	return pb
}

func (pb *ParamBuilder) Default(value any) *ParamBuilder {
	pb.param.Schema.Value.Default = value
	return pb
}

func (pb *ParamBuilder) Done() *RouteBuilder {
	return pb.route
}
