// Package delivery provides domain entities and business logic for parcel
// delivery management. It implements the Delivery aggregate root with
// lifecycle management and state transitions.
//
// The package includes:
//   - Delivery: The aggregate root that manages delivery identity, customer
//     and geography details, assignment and lifecycle timestamps
//   - Status: A state machine describing the nine-stage delivery workflow
//
// Key business rules:
//   - Deliveries carry an immutable, globally unique tracking number
//   - Customer, address and city fields are required; weight and price are
//     strictly positive
//   - Pickup and delivery timestamps are stamped exactly once, on the first
//     transition into PICKED_UP / DELIVERED respectively
//   - Driver and vehicle identifiers are attached only through assignment,
//     which forces the status to ASSIGNED
//   - DELIVERED, FAILED and CANCELLED are terminal statuses in the
//     transition table exposed by Status
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package delivery
