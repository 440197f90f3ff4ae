// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package anthropic

import (
	"bytes"
	"strings"
	"text/template"

	"github.com/civicdata/contribcat/pkg/types"
)

// categorizationPromptTmpl is the prompt sent to the Messages API for each
// contribution row. The rules are ordered most-specific first; the model is
// instructed to answer with the bare category name.
var categorizationPromptTmpl = template.Must(template.New("categorization").Parse(`Please categorize this campaign contributor based on the available information.

Contributor Name: {{.Name}}
Employer: {{.Employer}}
Occupation: {{.Occupation}}

Example categories:
{{.Categories}}

Respond with only the most appropriate category from the list above. Base your decision on:
1. The contributor name (look for committee names, candidate names, organization names, unions)
2. The employer information (look for companies, government entities, law firms)
3. The occupation (look for specific professions like lawyers, consultants, etc.)

Apply these rules IN ORDER (more specific categories first):

If the contributor name appears to be a labor union (contains "Union", "Labor", "Workers", "Association" for employee groups, etc.) and has an ID number, choose "Labor Unions" - even if it also contains "PAC" or "Committee".
Note: "DRIVE Committee" is specifically a labor union committee (part of the Teamsters Union) and should be categorized as "Labor Unions".
Groups of employees referred to as "Administrators" or "Managers" should not be categorized as labor unions.
If the contributor name appears to be a tribal entity, choose "Indian Tribes".
If the contributor name or occupation appears to be a lobbyist or political consultant, choose "Lobbyists and Political Consultants".
If the contributor name or occupation appears to be a lawyer or legal firm, choose "Lawyers".
If the contributor name appears to be from the oil industry, choose "Oil Industry".
If the contributor name appears to be from the pharmaceutical industry, choose "Pharmaceutical Industry".
If the contributor name appears to be from the real estate industry, choose "Real Estate Industry". This includes but is not limited to construction companies, real estate developers, landlords, architects, engineering firms, and any entity with "YIMBY" in the name.
If the contributor name appears to be from environmental groups, choose "Environmental Groups".
If the contributor name appears to be a political committee or candidate committee and has an ID number, choose "Democratic Party Committees" or "Other political action committees" or "State Legislative Candidates/Officeholders" or "Local Government Candidates/Officeholders" as appropriate.
If the contributor name appears to be a business entity, choose "Business contributor (with no other information)".
If the contributor name appears to be an individual, labelled by first and last name, choose "Individual contributor (with no other information)".
Otherwise, choose "Other"

Do not explain your reasoning. Do not include any other text in your response.

No text that you provide for the category should be longer than 50 characters.

Category:`))

// notProvided replaces blank export fields in the prompt so the model treats
// them as absent rather than empty strings.
const notProvided = "Not provided"

// renderPrompt executes the categorization prompt for one contributor.
func renderPrompt(c types.Contributor, categories []string) (string, error) {
	employer := c.Employer
	if employer == "" {
		employer = notProvided
	}
	occupation := c.Occupation
	if occupation == "" {
		occupation = notProvided
	}

	lines := make([]string, len(categories))
	for i, cat := range categories {
		lines[i] = "- " + cat
	}

	var buf bytes.Buffer
	err := categorizationPromptTmpl.Execute(&buf, struct {
		Name, Employer, Occupation, Categories string
	}{
		Name:       c.Name,
		Employer:   employer,
		Occupation: occupation,
		Categories: strings.Join(lines, "\n"),
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
