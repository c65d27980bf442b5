package model

// Railway represents an operating railway company as stored in the
// `railways` table.  Trains reference a railway via RailwayID.
//
// Fields:
//
//	ID            – primary key identifier.
//	RailwayName   – display name of the operator.
//	RailwayCode   – unique short code (e.g. "IR").
//	ContactNumber – optional support number.
//	Email         – optional contact email.
//	IsActive      – whether the operator is active.
type Railway struct {
	ID            uint64  // railways.id
	RailwayName   string  // railways.railway_name
	RailwayCode   string  // railways.railway_code
	ContactNumber *string // railways.contact_number (nullable)
	Email         *string // railways.email (nullable)
	IsActive      bool    // railways.is_active
}
