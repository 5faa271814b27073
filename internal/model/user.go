package model

import "time"

// User represents an employee record as stored in the `users` table.
// Users are created out of band by the seeder; the service itself never
// registers new accounts. The batch label decides on which weekdays the
// user holds a designated seat (see the policy package).
//
// Fields:
//  ID           – primary key identifier of the user.
//  Email        – unique email address used for login.
//  Name         – display name shown in the schedule.
//  PasswordHash – bcrypt hashed password.
//  Batch        – batch label ("B1" or "B2").
//  IsActive     – whether the account is active.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64    // users.id
	Email        string    // users.email
	Name         string    // users.name
	PasswordHash string    // users.password_hash
	Batch        string    // users.batch
	IsActive     bool      // users.is_active
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}
