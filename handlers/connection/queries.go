package connection

// Connection queries
const (
	// GetConnectionsQuery retrieves all connections for a user, with the
	// counterparty's display name resolved across the three profile tables.
	GetConnectionsQuery = `
        SELECT
            c.id,
            c.initiator_id,
            c.target_id,
            c.created_at,
            c.updated_at,
            COALESCE(vp.company_name, ip.full_name, mp.full_name, '') AS other_user_name,
            ou.role AS other_user_role,
            COALESCE(vp.logo_url, ip.photo_url, mp.photo_url) AS other_user_picture
        FROM connections c
        JOIN users ou ON ou.id = CASE WHEN c.initiator_id = $1 THEN c.target_id ELSE c.initiator_id END
        LEFT JOIN venture_profiles vp ON vp.user_id = ou.id
        LEFT JOIN investor_profiles ip ON ip.user_id = ou.id
        LEFT JOIN mentor_profiles mp ON mp.user_id = ou.id
        WHERE c.initiator_id = $1 OR c.target_id = $1
        ORDER BY c.created_at DESC
    `

	// CreateConnectionQuery creates a new connection
	CreateConnectionQuery = `
        INSERT INTO connections (initiator_id, target_id, connection_type, created_at, updated_at)
        VALUES ($1, $2, $3, NOW(), NOW())
        RETURNING id, created_at, updated_at
    `

	// DeleteConnectionQuery removes a connection
	DeleteConnectionQuery = `
        DELETE FROM connections
        WHERE id = $1 AND (initiator_id = $2 OR target_id = $2)
    `

	// CheckConnectionExistsQuery checks if a connection already exists
	CheckConnectionExistsQuery = `
        SELECT EXISTS (
            SELECT 1 FROM connections
            WHERE (initiator_id = $1 AND target_id = $2) OR
                  (initiator_id = $2 AND target_id = $1)
        )
    `
)
