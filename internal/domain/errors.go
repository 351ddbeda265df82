package domain

import "errors"

var (
	// ErrProductNotFound is returned when a product does not exist locally
	// or in OpenFoodFacts
	ErrProductNotFound = errors.New("product not found")

	// ErrStoreNotFound is returned when a store cannot be found
	ErrStoreNotFound = errors.New("store not found")

	// ErrListNotFound is returned when a shopping list cannot be found
	ErrListNotFound = errors.New("shopping list not found")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrExternalAPIFailure is returned when an external API request fails
	ErrExternalAPIFailure = errors.New("external API request failed")

	// ErrAddressNotFound is returned when geocoding yields no result
	ErrAddressNotFound = errors.New("address not found")
)
