package bill

import "github.com/bobmcallan/aurum/internal/models"

// Extraction prompts per category. The field keys must match the
// BillFields JSON tags exactly; the model is told to emit nulls rather
// than guesses so absent stays distinguishable from zero downstream.

const goldExtractionPrompt = `You are an expert at extracting structured data from Indian GOLD jewellery bill receipts.

First, identify the bill's main LINE-ITEM being purchased (e.g., a necklace/ring/chain) and IGNORE any generic rate tables (e.g., "Standard Rate of 24 Karat / 22 Karat / 18 Karat Gold").

Return ONLY a single JSON object with EXACTLY these keys:

{
  "vendor": string or null,
  "productName": string or null,
  "purchaseDate": string or null,
  "netMetalWeight": number or null,
  "stoneWeight": number or null,
  "grossWeight": number or null,
  "goldRatePerGram": number or null,
  "makingChargesPerGram": number or null,
  "hallmarkCharges": number or null,
  "stoneCost": number or null,
  "grossPrice": number or null,
  "gst": { "cgst": number or null, "sgst": number or null, "total": number or null },
  "discounts": number or null,
  "finalPrice": number or null,
  "goldPurity": string or null
}

Field definitions for Indian jewellery bills:
- productName: the purchased item's name/description. Do NOT return generic headings like "Standard Rate of ...".
- goldRatePerGram: the BASE GOLD RATE per gram, ONLY if explicitly stated. This is the LARGER 4-5 digit number (typically 6000-10000 Rs/gm). Look for "Gold Rate", "Rate", "Rate/gm". Do NOT infer it from other values.
- makingChargesPerGram: making/wastage/labor charges PER GRAM, the SMALLER 3-4 digit number. Often "Making", "MC", "Wastage", "VA". Do NOT confuse with goldRatePerGram; if goldRatePerGram < makingChargesPerGram you have swapped them.
- hallmarkCharges: hallmark assay charges as a TOTAL amount, not per-gram. Often "HM", "Hallmark", "Assay".
- stoneCost: cost of stones/diamonds embedded. This is NOT a discount.
- discounts: only amounts explicitly labeled "Discount", "Offer", "Less".
- grossPrice: total price before GST.
- finalPrice: final amount paid, after GST and discounts.

Rules:
- Use numbers without currency symbols or commas.
- Dates must be YYYY-MM-DD or null.
- If a value is missing or unreadable, set it to null.
- grossWeight should be >= netMetalWeight when both are present.
- Do NOT add extra keys, and do NOT include any text before or after the JSON.`

const diamondExtractionPrompt = `You are an expert at extracting structured data from Indian DIAMOND jewellery bill receipts.

First, identify the bill's main LINE-ITEM being purchased (e.g., diamond ring/earrings/necklace) and IGNORE any generic rate tables (e.g., "Standard Rate of 24 Karat / 22 Karat / 18 Karat Gold").

Return ONLY a single JSON object with EXACTLY these keys:

{
  "vendor": string or null,
  "productName": string or null,
  "purchaseDate": string or null,
  "netMetalWeight": number or null,
  "stoneWeight": number or null,
  "grossWeight": number or null,
  "goldRatePerGram": number or null,
  "makingChargesPerGram": number or null,
  "hallmarkCharges": number or null,
  "stoneCost": number or null,
  "grossPrice": number or null,
  "gst": { "cgst": number or null, "sgst": number or null, "total": number or null },
  "discounts": number or null,
  "finalPrice": number or null,
  "goldPurity": string or null,
  "diamondCarat": number or null,
  "diamondCut": string or null,
  "diamondClarity": string or null,
  "diamondColor": string or null,
  "diamondCertificate": string or null
}

Field definitions:
- diamondCarat: total diamond weight in CARATS (ct). In a two-line column like "NET STONE WEIGHT (Carats/Grams)" with values "0.159 0.032", diamondCarat = 0.159 (first value) and stoneWeight = 0.032 (second value, grams). NEVER swap these.
- diamondCertificate: certificate/report number (IGI/GIA) if present.
- stoneCost: the diamond line-item amount on the bill.
- goldRatePerGram: the BASE GOLD RATE per gram, only if explicitly stated (typically a 4-digit number). Do NOT swap with making charges.
- makingChargesPerGram: making/labor charges PER GRAM.
- hallmarkCharges: hallmark assay charges as a TOTAL amount.

Rules:
- Use numbers without currency symbols or commas.
- Dates must be YYYY-MM-DD or null.
- If a value is missing or unreadable, set it to null.
- grossWeight should be >= netMetalWeight when both are present.
- Do NOT add extra keys, and do NOT include any text before or after the JSON.`

func extractionPrompt(category models.Category) string {
	if category == models.CategoryDiamond {
		return diamondExtractionPrompt
	}
	return goldExtractionPrompt
}
