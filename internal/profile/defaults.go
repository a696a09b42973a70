package profile

// Built-in FedRAMP-aligned profile, used when no profile document is supplied
// and as the base that loaded documents merge over.

const defaultSystemPrompt = `You are a FedRAMP compliance expert analyzing infrastructure changes for Low impact systems.
You are performing this task because a rules-based classification could not confidently categorize the change.

Use the following guidelines to classify the change:

FedRAMP Change Categories:
- ROUTINE: Regular maintenance, patching, minor capacity changes (no notification required)
- ADAPTIVE: Frequent improvements with minimal security plan changes (10 days after completion)
- TRANSFORMATIVE: Rare, significant changes altering risk profile (30 days initial + 10 days final notice)
- IMPACT: Changes to security boundary or FIPS level (requires new assessment)`

const defaultUserPromptTemplate = `Change Details:
- Resource Type: {resource_type}
- Resource Name: {resource_name}
- Operation: {operation}
- Attributes Changed: {attributes}
- Diff Preview:
{diff_snippet}

Classify this change. Respond ONLY with valid JSON in this exact format:
{
  "category": "ROUTINE|ADAPTIVE|TRANSFORMATIVE|IMPACT",
  "confidence": 0.0-1.0,
  "reasoning": "Brief explanation (max 200 chars)"
}`

// Default returns the built-in profile. Callers receive a fresh value and may
// overlay a loaded document on top of it.
func Default() Profile {
	return Profile{
		Version:             "1.0",
		Name:                "Default FedRAMP Profile",
		Description:         "Built-in FedRAMP-aligned classification rules",
		ComplianceFramework: "FedRAMP 20X",
		ImpactLevel:         "Low",
		Rules: Rules{
			Routine: []Rule{
				{Pattern: `tags.*`, Description: "Tag changes"},
				{Pattern: `description`, Description: "Description changes"},
			},
			Adaptive: []Rule{
				{Resource: `aws_ami\..*`, Operation: "modify", Description: "AMI updates"},
				{Resource: `aws_instance\..*\.instance_type`, Operation: "modify", Description: "Instance type changes"},
			},
			Transformative: []Rule{
				{Pattern: `provider\..*\.region`, Operation: "modify", Description: "Region changes"},
				{Resource: `aws_rds_.*\.engine`, Operation: "modify", Description: "Database engine changes"},
			},
			Impact: []Rule{
				{Attribute: `.*encryption.*`, Operation: "delete|modify", Description: "Encryption changes"},
				{Resource: `aws_security_group\..*`, Attribute: `ingress`, Pattern: `0\.0\.0\.0/0`, Description: "Public security group"},
			},
		},
		AIFallback: AIFallback{
			Enabled:             true,
			Provider:            "anthropic",
			Model:               "claude-3-haiku-20240307",
			ConfidenceThreshold: 0.8,
			MaxTokens:           1024,
			MaxDiffChars:        1000,
			SystemPrompt:        defaultSystemPrompt,
			UserPromptTemplate:  defaultUserPromptTemplate,
		},
		Notifications: Notifications{
			Adaptive: AdaptiveNotifications{
				PostCompletionDays: 10,
				Description:        "Notify the security team within 10 business days after completion.",
			},
			Transformative: TransformativeNotifications{
				InitialNoticeDays:      30,
				FinalNoticeDays:        10,
				PostCompletionRequired: true,
				PostCompletionDays:     10,
				Description:            "Initial notice 30 business days before implementation, final notice 10 business days before, post-completion notification after.",
			},
			Impact: ImpactNotifications{
				RequiresNewAssessment: true,
				Description:           "A new security assessment and authorization must be conducted before implementation.",
			},
		},
	}
}
