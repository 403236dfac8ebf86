package repository

// AllModels lists every persisted model, in dependency order, for schema
// migration.
func AllModels() []interface{} {
	return []interface{}{
		&userModel{},
		&serviceModel{},
		&scheduleModel{},
		&appointmentModel{},
	}
}
