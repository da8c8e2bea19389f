package completion

// SystemPrompt fixes the reply format for every request
const SystemPrompt = "You are a helpful assistant that analyzes images and responds in strict JSON format."

// ExtractionPrompt is sent as the text part of the user message. Extraction
// quality depends entirely on this wording; change it only together with
// the field names in the domain package.
const ExtractionPrompt = `
        You are a helpful assistant analyzing an image for Thirumurugan Subramaniyan. 

        Your task is to extract seal/stamp details from the document image.  
        Return the following fields exactly:

        - OWNER SIGNATURE
        - STRUCTURAL ENGINEER
        - REGISTERED ENGINEER

        ### Matching Rules:
        1. OWNER SIGNATURE → look for labels like:
           - OWNER SIGNATURE
           - SIGNATURE OF OWNER
           - OWNER's SIGNATURE
        2. STRUCTURAL ENGINEER → look for labels like:
           - STRUCTURAL ENGINEER
           - SIGNATURE OF STRUCTURAL ENGINEER
           - STRUCTURAL ENGINEER'S SIGNATURE
        3. REGISTERED ENGINEER → look for labels like:
           - REGISTERED ENGINEER
           - ARCHITECT SIGNATURE
           - SIGNATURE OF ARCHITECT
           - LICENSED SURVEYOR
           - ARCHITECT/LICENSED SURVEYOR SIGNATURE

        ### Output Rules:
        1. Return only the exact matched text as it appears in the document (no modifications).
        2. If a field is not found, return an empty string "" for that field.
        3. Output must be valid JSON only (no extra text, no explanation, no markdown).

        ### Example Output:
        {
          "OWNER SIGNATURE": "For HEADWAY PREMIER INDUSPARK PRIVATE LIMITED",
          "STRUCTURAL ENGINEER": "A.N. RAVICHANDRAN",
          "REGISTERED ENGINEER": "A.N. RAVICHANDRAN"
        }

        Now extract and return the results in the same JSON format.
        `

// DefaultImageMIMEType is declared in the data URI regardless of the payload's
// real format unless MIME detection is enabled.
const DefaultImageMIMEType = "image/jpeg"

// DataURI embeds a base64 payload in a data URI with the given media type
func DataURI(mimeType, base64Data string) string {
	return "data:" + mimeType + ";base64," + base64Data
}
