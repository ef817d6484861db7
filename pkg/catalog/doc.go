// Package catalog loads request-type declarations from JSON or YAML files.
//
// A catalog document lists request types in order:
//
//	requestTypes:
//	  - id: webmoney
//	    transactionType: webmoney
//	    fields:
//	      - { name: transactionId, kind: string, required: true }
//	      - { name: amount, kind: amount, required: true }
//	    constraints:
//	      - { type: requires, field: returnFailureUrl, needs: [returnSuccessUrl] }
//
// Supported constraint types are requires, together and when.
package catalog
