// Package argus provides a classification engine for infrastructure-as-code
// changes. Each change is matched against an ordered rule profile, optionally
// escalated to an AI fallback, and assigned business-day notification
// deadlines derived from its category.
//
// Quick start:
//
//	a, err := argus.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result := a.Classify(ctx, argus.Change{
//	    ResourceType:      "aws_s3_bucket",
//	    ResourceName:      "audit_logs",
//	    Operation:         "modify",
//	    AttributesChanged: []string{"server_side_encryption_configuration"},
//	})
//	fmt.Println(result.Classification.Category) // IMPACT
//
// An Argus instance is safe for concurrent use. Create once, reuse across
// requests.
package argus
