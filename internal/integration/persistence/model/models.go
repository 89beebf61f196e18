// Package model defines database models for persistence layer.
package model

// All returns every model managed by AutoMigrate, parents before children.
func All() []any {
	return []any{
		&UserModel{},
		&CategoryModel{},
		&TransactionModel{},
		&SavingsGoalModel{},
		&PaymentEventModel{},
		&BudgetModel{},
		&LiabilityModel{},
		&NotificationModel{},
	}
}
