package extraction

// Prompt templates for structured extraction. Both demand a bare JSON object;
// the engine still strips markdown fences and validates every field, since
// the model output is untrusted either way.

const rfpPromptTemplate = `You are an RFP (Request for Proposal) data extraction assistant.
Analyze the following natural language RFP description and extract structured data.

RFP Description:
%s

Extract and return a JSON object with the following structure:
{
    "title": "Brief descriptive title for the RFP",
    "budget": <numeric value or null if not mentioned>,
    "deadline": "YYYY-MM-DD format or null if not mentioned",
    "items": [
        {
            "name": "Item name",
            "quantity": <numeric value, default to 1 if not specified>,
            "specifications": "Technical specifications or requirements"
        }
    ]
}

Rules:
1. Extract budget as a numeric value without currency symbols
2. Convert any date mentions to YYYY-MM-DD format
3. If multiple items are mentioned, create separate entries in the items array
4. If no specific items are mentioned, infer from the context
5. Return ONLY valid JSON, no additional text or markdown formatting

JSON:`

const proposalPromptTemplate = `You are a proposal data extraction assistant.
Analyze the following email body which contains a vendor's proposal/quote response.

Email Body:
%s

Extract and return a JSON object with the following structure:
{
    "price": <total price as numeric value or null if not found>,
    "payment_terms": "Payment terms description or null",
    "warranty": "Warranty information or null"
}

Rules:
1. Extract the total price/quote amount as a numeric value without currency symbols
2. Extract payment terms (e.g., "Net 30", "50%% upfront, 50%% on delivery", etc.)
3. Extract warranty information (e.g., "1 year warranty", "90 days limited warranty", etc.)
4. If any field is not mentioned in the email, set it to null
5. Return ONLY valid JSON, no additional text or markdown formatting

JSON:`
