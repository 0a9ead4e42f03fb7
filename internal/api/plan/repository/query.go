package planRepository

const (
	queryCreatePlan = `
		INSERT INTO trip_plans (
			id,
			user_id,
			conversation_id,
			name,
			budget,
			total_cost,
			created_at,
			updated_at
		) VALUES (
			:id,
			:user_id,
			:conversation_id,
			:name,
			:budget,
			:total_cost,
			:created_at,
			:updated_at
		)
	`

	queryGetPlanByID = `
		SELECT
			id,
			user_id,
			conversation_id,
			name,
			budget,
			total_cost,
			created_at,
			updated_at
		FROM trip_plans
		WHERE id = :id
	`

	queryGetPlansByUserID = `
		SELECT
			id,
			user_id,
			conversation_id,
			name,
			budget,
			total_cost,
			created_at,
			updated_at
		FROM trip_plans
		WHERE user_id = :user_id
		ORDER BY updated_at DESC
	`

	queryUpdatePlanTotalCost = `
		UPDATE trip_plans
		SET
			total_cost = :total_cost,
			updated_at = :updated_at
		WHERE id = :id
	`

	queryCreatePlanItem = `
		INSERT INTO trip_plan_items (
			id,
			plan_id,
			kind,
			name,
			price,
			currency,
			details,
			booked,
			created_at
		) VALUES (
			:id,
			:plan_id,
			:kind,
			:name,
			:price,
			:currency,
			:details,
			:booked,
			:created_at
		)
	`

	queryGetPlanItemByID = `
		SELECT
			id,
			plan_id,
			kind,
			name,
			price,
			currency,
			details,
			booked,
			created_at
		FROM trip_plan_items
		WHERE id = :id
	`

	queryGetPlanItemsByPlanID = `
		SELECT
			id,
			plan_id,
			kind,
			name,
			price,
			currency,
			details,
			booked,
			created_at
		FROM trip_plan_items
		WHERE plan_id = :plan_id
		ORDER BY created_at ASC
	`

	queryDeletePlanItem = `
		DELETE FROM trip_plan_items
		WHERE id = :id
	`

	queryMarkPlanItemBooked = `
		UPDATE trip_plan_items
		SET booked = TRUE
		WHERE id = :id
	`
)
