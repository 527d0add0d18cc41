// Package user provides the User aggregate. A user is identified by phone
// number and carries a role fixed at registration. Drivers also carry a
// DriverProfile whose status an admin moves through
// PendingApproval -> Active <-> Inactive | Suspended.
package user
