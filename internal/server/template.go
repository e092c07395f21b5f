package server

const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>Aspect Sentiment: LLM vs NLI</title>
  <style>
    body { font-family: sans-serif; max-width: 48rem; margin: 2rem auto; padding: 0 1rem; }
    textarea { width: 100%; }
    table { border-collapse: collapse; margin-top: 1rem; }
    th, td { border: 1px solid #999; padding: 0.3rem 0.8rem; text-align: left; }
    fieldset { margin: 1rem 0; border: 1px solid #ccc; }
  </style>
</head>
<body>
  <h2>Aspect-Based Sentiment &mdash; Compare Methods</h2>
  <textarea id="review" rows="8" placeholder="Paste a movie review…"></textarea>
  <fieldset>
    <legend>Aspects</legend>
    {{range .Aspects}}
    <label><input type="checkbox" name="aspect" value="{{.}}" checked> {{.}}</label>
    {{end}}
  </fieldset>
  <fieldset>
    <legend>Method</legend>
    <label><input type="radio" name="method" value="llm" checked> LLM (OpenAI)</label>
    <label><input type="radio" name="method" value="nli"> Zero-shot NLI (local)</label>
    <label><input type="radio" name="method" value="vader"> VADER lexicon</label>
  </fieldset>
  <button id="run">Analyze</button>
  <table id="results" hidden>
    <thead><tr><th>aspect</th><th>sentiment</th></tr></thead>
    <tbody></tbody>
  </table>
  <script>
    document.getElementById("run").addEventListener("click", async () => {
      const aspects = [...document.querySelectorAll('input[name="aspect"]:checked')].map(el => el.value);
      const method = document.querySelector('input[name="method"]:checked').value;
      const review = document.getElementById("review").value;

      const resp = await fetch("/analyze", {
        method: "POST",
        headers: { "Content-Type": "application/json" },
        body: JSON.stringify({ review, aspects, method }),
      });
      const data = await resp.json();

      const tbody = document.querySelector("#results tbody");
      tbody.innerHTML = "";
      for (const row of data.rows || []) {
        const tr = document.createElement("tr");
        for (const value of [row.aspect, row.sentiment]) {
          const td = document.createElement("td");
          td.textContent = value;
          tr.appendChild(td);
        }
        tbody.appendChild(tr);
      }
      document.getElementById("results").hidden = false;
    });
  </script>
</body>
</html>`
