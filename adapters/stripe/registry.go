package stripe

import (
	"github.com/preslavrachev/stripetable/core"
)

// DefaultBaseURL is the live Stripe API root
const DefaultBaseURL = "https://api.stripe.com/v1/"

// PageSize is the maximum page size the Stripe list API allows
const PageSize = 100

// NewCatalog returns the catalog of supported Stripe resources. Schemas and
// pushdownable fields follow the Stripe list API documentation for each
// collection; adding a resource means adding an entry here, not new control
// flow.
func NewCatalog() *core.Catalog {
	catalog := core.NewCatalog()

	// https://stripe.com/docs/api/balance
	catalog.Register(core.NewResource("balance", []core.FieldInfo{
		{Name: "amount", Type: core.FieldInt},
		{Name: "currency", Type: core.FieldString},
	}).WithObjectKey("available").AsSingleton())

	// https://stripe.com/docs/api/balance_transactions/list
	catalog.Register(core.NewResource("balance_transactions", []core.FieldInfo{
		{Name: "id", Type: core.FieldString},
		{Name: "amount", Type: core.FieldInt},
		{Name: "currency", Type: core.FieldString},
		{Name: "description", Type: core.FieldString},
		{Name: "fee", Type: core.FieldInt},
		{Name: "net", Type: core.FieldInt},
		{Name: "status", Type: core.FieldString},
		{Name: "type", Type: core.FieldString},
		{Name: "created", Type: core.FieldTimestamp},
	}).WithPushdown("payout", "type"))

	// https://stripe.com/docs/api/charges/list
	catalog.Register(core.NewResource("charges", []core.FieldInfo{
		{Name: "id", Type: core.FieldString},
		{Name: "amount", Type: core.FieldInt},
		{Name: "currency", Type: core.FieldString},
		{Name: "customer", Type: core.FieldString},
		{Name: "description", Type: core.FieldString},
		{Name: "invoice", Type: core.FieldString},
		{Name: "payment_intent", Type: core.FieldString},
		{Name: "status", Type: core.FieldString},
		{Name: "created", Type: core.FieldTimestamp},
	}).WithPushdown("customer"))

	// https://stripe.com/docs/api/customers/list
	catalog.Register(core.NewResource("customers", []core.FieldInfo{
		{Name: "id", Type: core.FieldString},
		{Name: "email", Type: core.FieldString},
		{Name: "name", Type: core.FieldString},
		{Name: "description", Type: core.FieldString},
		{Name: "created", Type: core.FieldTimestamp},
	}).WithPushdown("email").WithDirectLookup())

	// https://stripe.com/docs/api/invoices/list
	catalog.Register(core.NewResource("invoices", []core.FieldInfo{
		{Name: "id", Type: core.FieldString},
		{Name: "customer", Type: core.FieldString},
		{Name: "subscription", Type: core.FieldString},
		{Name: "status", Type: core.FieldString},
		{Name: "total", Type: core.FieldInt},
		{Name: "currency", Type: core.FieldString},
		{Name: "period_start", Type: core.FieldTimestamp},
		{Name: "period_end", Type: core.FieldTimestamp},
	}).WithPushdown("customer", "status", "subscription"))

	// https://stripe.com/docs/api/payment_intents/list
	catalog.Register(core.NewResource("payment_intents", []core.FieldInfo{
		{Name: "id", Type: core.FieldString},
		{Name: "customer", Type: core.FieldString},
		{Name: "amount", Type: core.FieldInt},
		{Name: "currency", Type: core.FieldString},
		{Name: "payment_method", Type: core.FieldString},
		{Name: "created", Type: core.FieldTimestamp},
	}).WithPushdown("customer"))

	// https://stripe.com/docs/api/products/list
	catalog.Register(core.NewResource("products", []core.FieldInfo{
		{Name: "id", Type: core.FieldString},
		{Name: "name", Type: core.FieldString},
		{Name: "active", Type: core.FieldBool},
		{Name: "default_price", Type: core.FieldString},
		{Name: "description", Type: core.FieldString},
		{Name: "created", Type: core.FieldTimestamp},
		{Name: "updated", Type: core.FieldTimestamp},
	}).WithPushdown("active").WithDirectLookup())

	// https://stripe.com/docs/api/subscriptions/list
	catalog.Register(core.NewResource("subscriptions", []core.FieldInfo{
		{Name: "id", Type: core.FieldString},
		{Name: "customer", Type: core.FieldString},
		{Name: "currency", Type: core.FieldString},
		{Name: "current_period_start", Type: core.FieldTimestamp},
		{Name: "current_period_end", Type: core.FieldTimestamp},
	}).WithPushdown("customer", "price", "status").WithDirectLookup())

	return catalog
}
