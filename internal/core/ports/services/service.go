package services

// ServiceContainer holds instances of all the application services. This is
// the main entry point for accessing service functionality, particularly in
// the handlers.
type ServiceContainer struct {
	Rate       RateSvcFacade
	Sale       SaleSvcFacade
	Receivable ReceivableSvcFacade
	Product    ProductSvcFacade
	Client     ClientSvcFacade
	Expense    ExpenseSvcFacade
	Audit      AuditSvcFacade
	Auth       AuthSvcFacade
}
