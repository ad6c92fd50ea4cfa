package meetings

// Meeting queries
const (
	ListMeetingsQuery = `
		SELECT m.id, m.proposer_id, m.invitee_id, m.scheduled_at, m.subject, m.status,
			m.created_at, m.updated_at,
			COALESCE(vp.company_name, ip.full_name, mp.full_name, '') AS other_name
		FROM meetings m
		JOIN users ou ON ou.id = CASE WHEN m.proposer_id = $1 THEN m.invitee_id ELSE m.proposer_id END
		LEFT JOIN venture_profiles vp ON vp.user_id = ou.id
		LEFT JOIN investor_profiles ip ON ip.user_id = ou.id
		LEFT JOIN mentor_profiles mp ON mp.user_id = ou.id
		WHERE m.proposer_id = $1 OR m.invitee_id = $1
		ORDER BY m.scheduled_at
	`

	InsertMeetingQuery = `
		INSERT INTO meetings (proposer_id, invitee_id, scheduled_at, subject, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, 'proposed', NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	ConfirmMeetingQuery = `
		UPDATE meetings
		SET status = 'confirmed', updated_at = NOW()
		WHERE id = $1 AND invitee_id = $2 AND status = 'proposed'
	`

	CancelMeetingQuery = `
		UPDATE meetings
		SET status = 'cancelled', updated_at = NOW()
		WHERE id = $1 AND (proposer_id = $2 OR invitee_id = $2) AND status <> 'cancelled'
	`

	MeetingPartiesQuery = `
		SELECT proposer_id, invitee_id FROM meetings WHERE id = $1
	`

	ConnectedQuery = `
		SELECT EXISTS (
			SELECT 1 FROM connections
			WHERE (initiator_id = $1 AND target_id = $2) OR
				  (initiator_id = $2 AND target_id = $1)
		)
	`
)
