package genai

import (
	"fmt"
	"strings"

	"tcg-card-studio/internal/models"
)

var gameStyles = map[models.Game]string{
	models.GamePokemon:  "Pokémon TCG card layout: yellow border, HP in the top right, type symbol, artwork window, two attacks with energy costs, weakness/resistance/retreat bar",
	models.GameMagic:    "Magic: The Gathering card layout: mana cost top right, art box, type line with set symbol, rules text box, power/toughness bottom right",
	models.GameYugioh:   "Yu-Gi-Oh! card layout: name bar with attribute symbol, level stars, square artwork, type line, effect text box, ATK/DEF at the bottom",
	models.GameLorcana:  "Disney Lorcana card layout: ink cost hexagon top left, painted storybook artwork, name and version banner, strength and willpower, lore value",
	models.GameOnePiece: "One Piece Card Game layout: cost top left, power top right, vibrant anime artwork, color bar, card type and attribute, effect text",
}

// GameStyle describes the card frame of a game for prompts.
func GameStyle(game models.Game) string {
	if style, ok := gameStyles[game]; ok {
		return style
	}
	return "classic collectible trading card layout"
}

func cardPrompt(p CardParams) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create a complete, print-ready trading card image for the character %q.\n", p.CharacterName)
	fmt.Fprintf(&b, "Card frame: %s.\n", GameStyle(p.Game))
	if p.CharacterType != "" {
		fmt.Fprintf(&b, "Character type: %s.\n", p.CharacterType)
	}
	if p.Rarity != "" {
		fmt.Fprintf(&b, "Rarity: %s. Reflect it with the finish (holo, foil or full art).\n", p.Rarity)
	}
	if p.Set != "" {
		fmt.Fprintf(&b, "Set name: %s.\n", p.Set)
	}
	if p.Style != "" {
		fmt.Fprintf(&b, "Artwork style: %s.\n", p.Style)
	}
	if p.Description != "" {
		fmt.Fprintf(&b, "Character description: %s.\n", p.Description)
	}
	if len(p.Attacks) > 0 {
		fmt.Fprintf(&b, "Abilities or attacks to print on the card: %s.\n", strings.Join(p.Attacks, "; "))
	}
	b.WriteString("Portrait orientation, 5:7 aspect ratio, all text legible, no watermarks.")
	return b.String()
}

func photoCardPrompt(p PhotoParams) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Turn the subject of the attached photo into the character %q on a trading card.\n", p.CharacterName)
	fmt.Fprintf(&b, "Card frame: %s.\n", GameStyle(p.Game))
	b.WriteString("Keep the subject recognisable: same pose, features and colours, redrawn as card artwork.\n")
	if p.Style != "" {
		fmt.Fprintf(&b, "Artwork style: %s.\n", p.Style)
	}
	if p.Description != "" {
		fmt.Fprintf(&b, "Additional details: %s.\n", p.Description)
	}
	b.WriteString("Portrait orientation, 5:7 aspect ratio, all text legible, no watermarks.")
	return b.String()
}

const scanPrompt = `You are an expert trading card identifier. Read the card in the image and
answer with a single JSON object with these keys:
name, set, rarity, game (one of pokemon, magic, yugioh, lorcana, onepiece),
number, hp, types (array of strings), attacks (array of strings), description.
Use an empty string or empty array for anything you cannot read. Do not guess a set
you cannot see.`

func gradePrompt(p GradeParams) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are a professional card grader using the %s scale.\n", p.GradingScale)
	b.WriteString("Inspect the attached card photos (front first, back second if present) and grade ")
	b.WriteString("centering, corners, edges and surface on a 1 to 10 scale.\n")
	if p.CardName != "" {
		fmt.Fprintf(&b, "The card is %q", p.CardName)
		if p.Set != "" {
			fmt.Fprintf(&b, " from the set %q", p.Set)
		}
		b.WriteString(".\n")
	}
	b.WriteString(`Answer with a single JSON object:
{"overallGrade": number, "gradeLabel": string, "categories": [{"name": string, "score": number, "notes": string}],
"recommendations": [string], "summary": string}
Photos can hide defects; say so in the summary when image quality limits the grade.`)
	return b.String()
}

// VideoPrompt is the default animation prompt for a card.
func VideoPrompt(card *models.Card) string {
	name := card.Name
	if name == "" {
		name = "the character"
	}
	return fmt.Sprintf("Animate this %s trading card of %s. The character comes alive inside the artwork "+
		"with gentle, looping motion while the holographic foil shimmers. Slow camera push-in. "+
		"Keep the card frame and text steady and legible.", GameLabel(card.Game), name)
}

// GameLabel is the display name of a game.
func GameLabel(game models.Game) string {
	switch game {
	case models.GamePokemon:
		return "Pokémon"
	case models.GameMagic:
		return "Magic: The Gathering"
	case models.GameYugioh:
		return "Yu-Gi-Oh!"
	case models.GameLorcana:
		return "Disney Lorcana"
	case models.GameOnePiece:
		return "One Piece"
	}
	return "collectible"
}
