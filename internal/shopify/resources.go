package shopify

// Customer is the embedded customer record carried by orders and
// checkouts. Every field is optional on the platform side.
type Customer struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
}

type LineItem struct {
	Title string `json:"title"`
}

type Order struct {
	ID        int64      `json:"id"`
	Customer  *Customer  `json:"customer"`
	LineItems []LineItem `json:"line_items"`
}

type OrdersEnvelope struct {
	Orders []Order `json:"orders"`
}

func (e OrdersEnvelope) Items() []Order { return e.Orders }

// Dispute timestamps stay as the platform's strings end to end. They
// are stored and echoed verbatim, never parsed.
type Dispute struct {
	ID             int64   `json:"id"`
	OrderID        *int64  `json:"order_id"`
	Type           string  `json:"type"`
	Amount         string  `json:"amount"`
	Currency       string  `json:"currency"`
	Reason         string  `json:"reason"`
	Status         string  `json:"status"`
	InitiatedAt    string  `json:"initiated_at"`
	EvidenceDueBy  string  `json:"evidence_due_by"`
	EvidenceSentOn *string `json:"evidence_sent_on"`
}

type DisputesEnvelope struct {
	Disputes []Dispute `json:"disputes"`
}

func (e DisputesEnvelope) Items() []Dispute { return e.Disputes }

type Checkout struct {
	ID                   int64     `json:"id"`
	AbandonedCheckoutURL string    `json:"abandoned_checkout_url"`
	Customer             *Customer `json:"customer"`
}

type CheckoutsEnvelope struct {
	Checkouts []Checkout `json:"checkouts"`
}

func (e CheckoutsEnvelope) Items() []Checkout { return e.Checkouts }

type Webhook struct {
	ID      int64  `json:"id"`
	Topic   string `json:"topic"`
	Address string `json:"address"`
	Format  string `json:"format"`
}

type WebhooksEnvelope struct {
	Webhooks []Webhook `json:"webhooks"`
}

func (e WebhooksEnvelope) Items() []Webhook { return e.Webhooks }
