package shared

// Task types routed through the asynq worker.
const (
	TypeCatalogIntegrityScan = "catalog:integrity_scan"
)

// Queue names, in descending priority.
const (
	QueueDefault     = "default"
	QueueMaintenance = "low"
)
