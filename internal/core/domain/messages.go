package domain

import "fmt"

// Notification message templates. Each domain event maps to exactly one
// template and one type tag; keep the wording stable, clients display it
// verbatim.

// PhotoUploadedMessage announces a client photo upload to the admin.
func PhotoUploadedMessage(userName string) string {
	if userName == "" {
		userName = "un client"
	}
	return fmt.Sprintf("Nouvelle photo uploadée par %s", userName)
}

// NewPropositionMessage announces an admin proposition to the client.
func NewPropositionMessage(productName string) string {
	return fmt.Sprintf("Nouvelle proposition: %s", productName)
}

// PropositionResponseMessage announces a client's response to the admin.
func PropositionResponseMessage(status PropositionStatus, productName string) string {
	var verb string
	switch status {
	case PropositionRefused:
		verb = "a refusé"
	case PropositionInterested:
		verb = "est intéressé(e) par"
	case PropositionPurchased:
		verb = "a acheté"
	default:
		verb = "a répondu à"
	}
	return fmt.Sprintf("Client %s la proposition: %s", verb, productName)
}

// PiecesOrderUpdatedMessage announces an order-size change to the admin.
func PiecesOrderUpdatedMessage(userName string, pieces int) string {
	return fmt.Sprintf("%s a modifié sa commande: %d pièce(s)", userName, pieces)
}
