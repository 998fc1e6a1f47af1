package handlers

import (
	"net/http"

	"github.com/foodiehub/foodiehub/openapi"
	"github.com/foodiehub/foodiehub/services/directory"
	"github.com/foodiehub/foodiehub/services/images"
	"github.com/foodiehub/foodiehub/services/session"
)

type messageResponse struct {
	Message string `json:"message"`
}

type imageURLResponse struct {
	ImageURL string `json:"imageUrl"`
}

// Describe records every API route in doc.
func Describe(doc *openapi.OpenAPI) {
	doc.Tag("Auth", "Registration and token exchange").
		Tag("Cities", "Cities and their pictures").
		Tag("Restaurants", "Restaurants by city and price range").
		Tag("PriceRanges", "Price range catalogue").
		Tag("Images", "Uploaded images")

	describeAuth(doc)
	describeCities(doc)
	describeRestaurants(doc)
	describePriceRanges(doc)
	describeImages(doc)
}

func secured(rb *openapi.RouteBuilder) *openapi.RouteBuilder {
	return rb.Security(openapi.BearerScheme).
		Response(http.StatusUnauthorized, nil, "Missing or rejected access token").
		Response(http.StatusForbidden, nil, "Caller lacks the required role")
}

func describeAuth(doc *openapi.OpenAPI) {
	doc.Document(http.MethodPost, "/api/auth/register").
		Summary("Register an account").Tags("Auth").
		Body(registerRequest{}, "Account to create; username is an email").
		Response(http.StatusOK, messageResponse{}, "Registered").
		Response(http.StatusBadRequest, nil, "Invalid input or account exists").
		Build()

	doc.Document(http.MethodPost, "/api/auth/login").
		Summary("Exchange credentials for a token pair").Tags("Auth").
		Body(loginRequest{}, "Credentials").
		Response(http.StatusOK, session.TokenPair{}, "Access and refresh tokens").
		Response(http.StatusBadRequest, nil, "Invalid credentials").
		Response(http.StatusTooManyRequests, nil, "Rate limit exceeded").
		Build()

	doc.Document(http.MethodPost, "/api/auth/refresh").
		Summary("Rotate a refresh token").
		Description("The presented refresh token is single use; it is revoked on success.").
		Tags("Auth").
		Body(refreshRequest{}, "Refresh token").
		Response(http.StatusOK, session.TokenPair{}, "New token pair").
		Response(http.StatusUnauthorized, nil, "Invalid or expired refresh token").
		Response(http.StatusTooManyRequests, nil, "Rate limit exceeded").
		Build()

	doc.Document(http.MethodPost, "/api/auth/revoke").
		Summary("Revoke a refresh token").Tags("Auth").
		Body(refreshRequest{}, "Refresh token").
		Response(http.StatusNoContent, nil, "Revoked").
		Build()
}

func describeCities(doc *openapi.OpenAPI) {
	secured(doc.Document(http.MethodGet, "/api/cities").
		Summary("List cities").Tags("Cities").
		QueryParam("search", "Substring of the city name").Done().
		QueryParam("page", "One-based page").TypeInt().Default(1).Done().
		QueryParam("pageSize", "Page size").TypeInt().Default(directory.DefaultPageSize).Done().
		Response(http.StatusOK, []directory.City{}, "Cities").
		Header(http.StatusOK, totalCountHeader, "Number of matching cities")).
		Build()

	doc.Document(http.MethodHead, "/api/cities").
		Summary("Count cities").Tags("Cities").
		Response(http.StatusOK, nil, "Count in X-Total-Count").
		Header(http.StatusOK, totalCountHeader, "Number of cities").
		Build()

	secured(doc.Document(http.MethodGet, "/api/cities/:id").
		Summary("Get a city").Tags("Cities").
		Response(http.StatusOK, directory.City{}, "City").
		Response(http.StatusNotFound, nil, "No such city")).
		Build()

	secured(doc.Document(http.MethodGet, "/api/cities/code/:code").
		Summary("Get a city by code").Tags("Cities").
		Response(http.StatusOK, directory.City{}, "City").
		Response(http.StatusNotFound, nil, "No such city")).
		Build()

	secured(doc.Document(http.MethodPost, "/api/cities").
		Summary("Create a city").Tags("Cities").
		Body(cityRequest{}, "City").
		Response(http.StatusCreated, directory.City{}, "Created").
		Response(http.StatusBadRequest, nil, "Validation failed")).
		Build()

	secured(doc.Document(http.MethodPut, "/api/cities/:id").
		Summary("Update a city").Tags("Cities").
		Body(cityRequest{}, "City").
		Response(http.StatusOK, directory.City{}, "Updated").
		Response(http.StatusNotFound, nil, "No such city")).
		Build()

	secured(doc.Document(http.MethodDelete, "/api/cities/:id").
		Summary("Delete a city").Tags("Cities").
		Response(http.StatusOK, directory.City{}, "Deleted city").
		Response(http.StatusNotFound, nil, "No such city")).
		Build()

	secured(doc.Document(http.MethodPost, "/api/cities/:id/image").
		Summary("Upload the city picture").Tags("Cities").
		BodyMultipart("JPG or PNG up to 10MB").FileField("file", true).Done().
		Response(http.StatusOK, imageURLResponse{}, "Stored").
		Response(http.StatusBadRequest, nil, "Unsupported or oversized file").
		Response(http.StatusNotFound, nil, "No such city")).
		Build()
}

func describeRestaurants(doc *openapi.OpenAPI) {
	secured(doc.Document(http.MethodGet, "/api/restaurants").
		Summary("List restaurants").Tags("Restaurants").
		QueryParam("filterOn", "Field to filter on").Enum("Name").Done().
		QueryParam("filterQuery", "Substring to match").Done().
		QueryParam("sortBy", "Sort column").Enum("Name", "Rating").Done().
		QueryParam("isAscending", "Sort direction").TypeBool().Default(true).Done().
		QueryParam("pageNumber", "One-based page").TypeInt().Default(1).Done().
		QueryParam("pageSize", "Page size").TypeInt().Default(directory.DefaultRestaurantLimit).Done().
		Response(http.StatusOK, []directory.Restaurant{}, "Restaurants")).
		Build()

	secured(doc.Document(http.MethodGet, "/api/restaurants/:id").
		Summary("Get a restaurant").Tags("Restaurants").
		Response(http.StatusOK, directory.Restaurant{}, "Restaurant").
		Response(http.StatusNotFound, nil, "No such restaurant")).
		Build()

	secured(doc.Document(http.MethodPost, "/api/restaurants").
		Summary("Create a restaurant").Tags("Restaurants").
		Body(restaurantRequest{}, "Restaurant").
		Response(http.StatusOK, directory.Restaurant{}, "Created").
		Response(http.StatusBadRequest, nil, "Validation failed or unknown city or price range")).
		Build()

	secured(doc.Document(http.MethodPut, "/api/restaurants/:id").
		Summary("Update a restaurant").Tags("Restaurants").
		Body(restaurantRequest{}, "Restaurant").
		Response(http.StatusOK, directory.Restaurant{}, "Updated").
		Response(http.StatusNotFound, nil, "No such restaurant")).
		Build()

	secured(doc.Document(http.MethodDelete, "/api/restaurants/:id").
		Summary("Delete a restaurant").Tags("Restaurants").
		Response(http.StatusOK, directory.Restaurant{}, "Deleted restaurant").
		Response(http.StatusNotFound, nil, "No such restaurant")).
		Build()
}

func describePriceRanges(doc *openapi.OpenAPI) {
	secured(doc.Document(http.MethodGet, "/api/priceranges").
		Summary("List price ranges").Tags("PriceRanges").
		Response(http.StatusOK, []directory.PriceRange{}, "Price ranges")).
		Build()

	secured(doc.Document(http.MethodGet, "/api/priceranges/:id").
		Summary("Get a price range").Tags("PriceRanges").
		Response(http.StatusOK, directory.PriceRange{}, "Price range").
		Response(http.StatusNotFound, nil, "No such price range")).
		Build()

	secured(doc.Document(http.MethodPost, "/api/priceranges").
		Summary("Create a price range").Tags("PriceRanges").
		Body(priceRangeRequest{}, "Price range").
		Response(http.StatusCreated, directory.PriceRange{}, "Created")).
		Build()

	secured(doc.Document(http.MethodPut, "/api/priceranges/:id").
		Summary("Rename a price range").Tags("PriceRanges").
		Body(priceRangeRequest{}, "Price range").
		Response(http.StatusOK, directory.PriceRange{}, "Updated").
		Response(http.StatusNotFound, nil, "No such price range")).
		Build()

	secured(doc.Document(http.MethodDelete, "/api/priceranges/:id").
		Summary("Delete a price range").Tags("PriceRanges").
		Response(http.StatusNoContent, nil, "Deleted").
		Response(http.StatusNotFound, nil, "No such price range")).
		Build()
}

func describeImages(doc *openapi.OpenAPI) {
	secured(doc.Document(http.MethodPost, "/api/images/upload").
		Summary("Upload an image").Tags("Images").
		BodyMultipart("JPG or PNG up to 10MB").
		FileField("file", true).Field("fileName", true).Field("fileDescription", false).Done().
		Response(http.StatusOK, images.Image{}, "Stored image").
		Response(http.StatusBadRequest, nil, "Unsupported or oversized file")).
		Build()

	secured(doc.Document(http.MethodGet, "/api/images").
		Summary("List images").Tags("Images").
		QueryParam("page", "One-based page").TypeInt().Default(1).Done().
		QueryParam("pageSize", "Page size").TypeInt().Default(directory.DefaultPageSize).Done().
		Response(http.StatusOK, []images.Image{}, "Images").
		Header(http.StatusOK, totalCountHeader, "Number of images")).
		Build()

	secured(doc.Document(http.MethodGet, "/api/images/:fileName").
		Summary("Download an image").Tags("Images").
		ResponseBinary(http.StatusOK, "image/*", "Image bytes").
		Response(http.StatusNotFound, nil, "No such image")).
		Build()

	secured(doc.Document(http.MethodDelete, "/api/images/:fileName").
		Summary("Delete an image").Tags("Images").
		Response(http.StatusNoContent, nil, "Deleted").
		Response(http.StatusNotFound, nil, "No such image")).
		Build()
}
