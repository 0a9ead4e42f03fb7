package chatRepository

const (
	queryCreateConversation = `
		INSERT INTO conversations (
			id,
			user_id,
			title,
			state,
			created_at,
			updated_at
		) VALUES (
			:id,
			:user_id,
			:title,
			:state,
			:created_at,
			:updated_at
		)
	`

	queryGetConversationByID = `
		SELECT
			id,
			user_id,
			title,
			state,
			created_at,
			updated_at
		FROM conversations
		WHERE id = :id
	`

	queryGetConversationsByUserID = `
		SELECT
			id,
			user_id,
			title,
			state,
			created_at,
			updated_at
		FROM conversations
		WHERE user_id = :user_id
		ORDER BY updated_at DESC
	`

	queryUpdateConversationState = `
		UPDATE conversations
		SET
			state = :state,
			updated_at = :updated_at
		WHERE id = :id
	`

	queryCreateMessage = `
		INSERT INTO chat_messages (
			id,
			conversation_id,
			role,
			text,
			metadata,
			attachment_url,
			created_at
		) VALUES (
			:id,
			:conversation_id,
			:role,
			:text,
			:metadata,
			:attachment_url,
			:created_at
		)
	`

	queryGetMessagesByConversationID = `
		SELECT
			id,
			conversation_id,
			role,
			text,
			metadata,
			attachment_url,
			created_at
		FROM chat_messages
		WHERE conversation_id = :conversation_id
		ORDER BY created_at ASC
	`

	queryDeleteMessagesByConversationID = `
		DELETE FROM chat_messages
		WHERE conversation_id = :conversation_id
	`

	queryCreateSearchSnapshot = `
		INSERT INTO search_snapshots (
			id,
			conversation_id,
			kind,
			query,
			filters,
			results,
			created_at
		) VALUES (
			:id,
			:conversation_id,
			:kind,
			:query,
			:filters,
			:results,
			:created_at
		)
	`

	queryGetLatestSearchSnapshot = `
		SELECT
			id,
			conversation_id,
			kind,
			query,
			filters,
			results,
			created_at
		FROM search_snapshots
		WHERE conversation_id = :conversation_id
		ORDER BY created_at DESC
		LIMIT 1
	`

	queryDeleteSearchSnapshotsByConversationID = `
		DELETE FROM search_snapshots
		WHERE conversation_id = :conversation_id
	`
)
