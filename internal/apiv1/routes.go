package apiv1

// BasePath prefixes every version 1 route.
const BasePath = "/api/v1"

const (
	RegisterPath     = "/auth/register"
	LoginPath        = "/auth/login"
	CategoriesPath   = "/categories"
	TransactionsPath = "/transactions"
)
