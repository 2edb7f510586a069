// Package mock is used to generate mock files for testing.
package mock

//go:generate mockgen -source ../permission/resolver.go -destination mock_permission/mock_resolver.go
//go:generate mockgen -source ../postgres/postgres_iface.go -destination mock_postgres/mock_postgres.go
//go:generate mockgen -package backoffice -source ../iface.go -destination ../mock_iface_test.go
//go:generate mockgen -package backoffice -source ../cookies.go -destination ../mock_cookies_test.go
