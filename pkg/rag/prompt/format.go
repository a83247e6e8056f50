package prompt

import (
	"fmt"
	"strings"

	"wide-toebox-be/internal/entity"
	"wide-toebox-be/pkg/vectorstore"
)

// FormatShoeData renders structured shoe matches for inclusion in a
// prompt.
func FormatShoeData(shoes []*entity.Shoe) string {
	if len(shoes) == 0 {
		return "No relevant shoes found in the database."
	}

	sections := make([]string, 0, len(shoes))
	for _, shoe := range shoes {
		var b strings.Builder
		fmt.Fprintf(&b, "## %s %s\n", shoe.Brand, shoe.Model)

		b.WriteString("### Specifications\n")
		if shoe.ForefootStackHeightMm != nil {
			fmt.Fprintf(&b, "- Forefoot Stack Height: %gmm\n", *shoe.ForefootStackHeightMm)
		}
		if shoe.HeelStackHeightMm != nil {
			fmt.Fprintf(&b, "- Heel Stack Height: %gmm\n", *shoe.HeelStackHeightMm)
		}
		if drop := shoe.Drop(); drop != nil {
			fmt.Fprintf(&b, "- Drop: %gmm\n", *drop)
		}
		if shoe.Fit != "" {
			fmt.Fprintf(&b, "- Fit: %s\n", shoe.Fit)
		}
		if shoe.WideOption {
			b.WriteString("- Wide Option: Yes\n")
		} else {
			b.WriteString("- Wide Option: No\n")
		}
		if shoe.IntendedUse != "" {
			fmt.Fprintf(&b, "- Intended Use: %s\n", shoe.IntendedUse)
		}
		if shoe.Description != "" {
			fmt.Fprintf(&b, "- Description: %s\n", shoe.Description)
		}

		if len(shoe.Genders) > 0 {
			b.WriteString("### Gender Specific information\n")
			for _, version := range shoe.Genders {
				fmt.Fprintf(&b, "- %s version", version.Gender)
				if version.PriceRRP != nil {
					fmt.Fprintf(&b, ", RRP: $%g", *version.PriceRRP)
				}
				if version.Price != nil {
					fmt.Fprintf(&b, ", Current Price: $%g", *version.Price)
				}
				if version.WeightGrams != nil {
					fmt.Fprintf(&b, ", Weight: %gg", *version.WeightGrams)
				}
				b.WriteString("\n")
			}
		}

		if len(shoe.Reviews) > 0 {
			b.WriteString("### Reviews\n")
			for _, review := range shoe.Reviews {
				if review.Fit != "" {
					fmt.Fprintf(&b, "- Fit: %s\n", review.Fit)
				}
				if review.Feel != "" {
					fmt.Fprintf(&b, "- Feel: %s\n", review.Feel)
				}
				if review.Durability != "" {
					fmt.Fprintf(&b, "- Durability: %s\n", review.Durability)
				}
			}
		}

		sections = append(sections, b.String())
	}
	return strings.Join(sections, "\n\n")
}

// FormatDocs renders retrieved documents for inclusion in a prompt,
// keeping the source locator next to each chunk.
func FormatDocs(docs []vectorstore.ScoredDocument) string {
	if len(docs) == 0 {
		return "No documents retrieved."
	}

	var b strings.Builder
	for _, doc := range docs {
		fmt.Fprintf(&b, "<document source=%q>\n%s\n</document>\n", doc.Metadata.Source, doc.PageContent)
	}
	return b.String()
}
