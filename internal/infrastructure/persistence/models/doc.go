// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer pure and free
// from ORM concerns.
//
// Key Principles:
// 1. Domain entities stay free of GORM tags and infrastructure concerns
// 2. Persistence models carry all GORM annotations and table mappings
// 3. Mappers convert between domain entities and persistence models
// 4. Repositories use persistence models for database operations
//
// Structure:
// - base.go: Base persistence models (BaseModel, AggregateModel)
// - catalog.go: Catalog models (Product, Variant, Category, Brand, Offer)
// - cart.go: Cart line model
// - promotion.go: Coupon model
// - order.go: Order and order item models
// - wallet.go: Wallet and wallet transaction models
// - customer.go: Address book model
package models
